package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2wechat/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Defaults applied when a field is left unset.
const (
	DefaultPort         = 8787
	DefaultMaxBodyBytes = 1 << 20 // 1 MiB request cap
	DefaultLogLevel     = "info"
	DefaultLogDir       = "logs"
	DefaultTimeout      = "30s"
)

// Field length limits to catch malformed configs early.
const (
	MaxDirLength      = 4096 // typical PATH_MAX
	MaxLevelLength    = 16   // logrus level names
	MaxDurationLength = 30   // "1h30m45s"
	MaxPort           = 65535
	MaxWorkers        = 1024 // sanity cap, pool clamps further
)

// Config holds all configuration for the conversion server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Themes ThemesConfig `yaml:"themes"`
	Render RenderConfig `yaml:"render"`
}

// ServerConfig defines HTTP listener options.
type ServerConfig struct {
	Port         int   `yaml:"port"`         // default 8787
	MaxBodyBytes int64 `yaml:"maxBodyBytes"` // request body cap, default 1 MiB
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // panic/fatal/error/warn/info/debug/trace
	Dir   string `yaml:"dir"`   // base directory for rotated log files
}

// ThemesConfig defines theme loading options.
type ThemesConfig struct {
	Dir string `yaml:"dir"` // custom theme directory (empty = embedded only)
}

// RenderConfig defines conversion pipeline options.
type RenderConfig struct {
	Workers int    `yaml:"workers"` // renderer pool size (0 = derive from GOMAXPROCS)
	Timeout string `yaml:"timeout"` // per-conversion timeout, Go duration syntax
}

// Validate checks field values so a broken config fails at startup,
// not on the first request.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > MaxPort {
		return fmt.Errorf("%w: server.port %d (must be 0-%d)", ErrInvalidValue, c.Server.Port, MaxPort)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.maxBodyBytes %d (must be >= 0)", ErrInvalidValue, c.Server.MaxBodyBytes)
	}

	if err := validateFieldLength("log.level", c.Log.Level, MaxLevelLength); err != nil {
		return err
	}
	if err := validateFieldLength("log.dir", c.Log.Dir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("themes.dir", c.Themes.Dir, MaxDirLength); err != nil {
		return err
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers %d (must be 0-%d)", ErrInvalidValue, c.Render.Workers, MaxWorkers)
	}
	if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if c.Render.Timeout != "" {
		d, err := time.ParseDuration(c.Render.Timeout)
		if err != nil {
			return fmt.Errorf("%w: render.timeout %q: %v", ErrInvalidValue, c.Render.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: render.timeout %q (must be positive)", ErrInvalidValue, c.Render.Timeout)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Timeout returns the per-conversion timeout as a duration.
// Unset or unparseable values fall back to the default.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort, MaxBodyBytes: DefaultMaxBodyBytes},
		Log:    LogConfig{Level: DefaultLogLevel, Dir: DefaultLogDir},
		Themes: ThemesConfig{Dir: ""},
		Render: RenderConfig{Workers: 0, Timeout: DefaultTimeout},
	}
}

// ApplyDefaults fills zero-valued fields with defaults.
// Called after file and environment merging so explicit values win.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Dir == "" {
		c.Log.Dir = DefaultLogDir
	}
	if c.Render.Timeout == "" {
		c.Render.Timeout = DefaultTimeout
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/md2wechat/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "md2wechat", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
