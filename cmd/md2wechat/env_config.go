package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2wechat/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	Port         int    // MD2WECHAT_PORT: HTTP listen port
	MaxBodyBytes int64  // MD2WECHAT_MAX_BODY_BYTES: request body cap in bytes
	LogLevel     string // MD2WECHAT_LOG_LEVEL: log level (debug, info, warn, error)
	LogDir       string // MD2WECHAT_LOG_DIR: log directory
	ThemesDir    string // MD2WECHAT_THEMES_DIR: theme CSS override directory
	ConfigPath   string // MD2WECHAT_CONFIG: config file name or path
}

// knownEnvVars lists valid MD2WECHAT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2WECHAT_PORT":           true,
	"MD2WECHAT_MAX_BODY_BYTES": true,
	"MD2WECHAT_LOG_LEVEL":      true,
	"MD2WECHAT_LOG_DIR":        true,
	"MD2WECHAT_THEMES_DIR":     true,
	"MD2WECHAT_CONFIG":         true,
	"MD2WECHAT_CONTAINER":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2WECHAT_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		LogLevel:   os.Getenv("MD2WECHAT_LOG_LEVEL"),
		LogDir:     os.Getenv("MD2WECHAT_LOG_DIR"),
		ThemesDir:  os.Getenv("MD2WECHAT_THEMES_DIR"),
		ConfigPath: os.Getenv("MD2WECHAT_CONFIG"),
	}

	if port := os.Getenv("MD2WECHAT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			cfg.Port = p
		}
	}

	if limit := os.Getenv("MD2WECHAT_MAX_BODY_BYTES"); limit != "" {
		if n, err := strconv.ParseInt(limit, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2WECHAT_* variables.
// Helps catch typos like MD2WECHAT_PROT instead of MD2WECHAT_PORT.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2WECHAT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values onto cfg.
// A set env var replaces the file value; CLI flags are merged later and
// win over both: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Port > 0 {
		cfg.Server.Port = env.Port
	}
	if env.MaxBodyBytes > 0 {
		cfg.Server.MaxBodyBytes = env.MaxBodyBytes
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogDir != "" {
		cfg.Log.Dir = env.LogDir
	}
	if env.ThemesDir != "" {
		cfg.Themes.Dir = env.ThemesDir
	}
}
