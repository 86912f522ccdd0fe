package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
	"github.com/alnah/go-md2wechat/internal/logging"
	"github.com/alnah/go-md2wechat/internal/server"
)

var (
	servePort         int
	serveMaxBodyBytes int64
	serveThemesDir    string
	serveConfigPath   string
	serveWatchFile    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the HTTP conversion server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveServeConfig(cmd)
		if err != nil {
			return err
		}

		if err := logging.InitLogger(logging.Options{Level: cfg.Log.Level, Dir: cfg.Log.Dir}); err != nil {
			return fmt.Errorf("initializing loggers: %w", err)
		}

		svc, err := newService(cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		srv := server.New(server.Config{
			Port:         cfg.Server.Port,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
			WatchFile:    serveWatchFile,
		}, svc)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			_ = srv.Shutdown(context.Background())
		}()

		color.Green("Starting server at http://0.0.0.0:%d/", cfg.Server.Port)
		if serveWatchFile != "" {
			color.Cyan("Live preview at http://0.0.0.0:%d/preview (watching %s)", cfg.Server.Port, serveWatchFile)
		}
		return srv.Start()
	},
}

// resolveServeConfig builds the effective configuration with precedence
// CLI flags > env vars > config file > defaults.
func resolveServeConfig(cmd *cobra.Command) (*config.Config, error) {
	warnUnknownEnvVars(os.Stderr)
	env := loadEnvConfig()

	configName := serveConfigPath
	if configName == "" {
		configName = env.ConfigPath
	}

	var cfg *config.Config
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
	}

	applyEnvConfig(env, cfg)

	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("max-body-bytes") {
		cfg.Server.MaxBodyBytes = serveMaxBodyBytes
	}
	if cmd.Flags().Changed("themes-dir") {
		cfg.Themes.Dir = serveThemesDir
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newService creates the conversion service from the resolved config.
func newService(cfg *config.Config) (*md2wechat.Service, error) {
	opts := []md2wechat.Option{md2wechat.WithTimeout(cfg.Timeout())}
	if cfg.Render.Workers > 0 {
		opts = append(opts, md2wechat.WithWorkers(cfg.Render.Workers))
	}
	if cfg.Themes.Dir != "" {
		opts = append(opts, md2wechat.WithThemesDir(cfg.Themes.Dir))
	}

	svc, err := md2wechat.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating service: %w", err)
	}
	return svc, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "port to listen on")
	serveCmd.Flags().Int64Var(&serveMaxBodyBytes, "max-body-bytes", config.DefaultMaxBodyBytes, "request body cap in bytes")
	serveCmd.Flags().StringVar(&serveThemesDir, "themes-dir", "", "directory overriding embedded theme CSS")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "config file name or path")
	serveCmd.Flags().StringVar(&serveWatchFile, "watch", "", "markdown file to watch for live preview")
	rootCmd.AddCommand(serveCmd)
}
