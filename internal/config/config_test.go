package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("Server.MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, DefaultMaxBodyBytes)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Dir != DefaultLogDir {
		t.Errorf("Log.Dir = %q, want %q", cfg.Log.Dir, DefaultLogDir)
	}
	if cfg.Themes.Dir != "" {
		t.Errorf("Themes.Dir = %q, want empty", cfg.Themes.Dir)
	}
	if cfg.Render.Workers != 0 {
		t.Errorf("Render.Workers = %d, want 0", cfg.Render.Workers)
	}
	if cfg.Render.Timeout != DefaultTimeout {
		t.Errorf("Render.Timeout = %q, want %q", cfg.Render.Timeout, DefaultTimeout)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit errors",
			fieldName: "test",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{
			name:    "default config is valid",
			mutate:  func(cfg *Config) {},
			wantErr: nil,
		},
		{
			name:    "zero config is valid",
			mutate:  func(cfg *Config) { *cfg = Config{} },
			wantErr: nil,
		},
		{
			name:    "negative port",
			mutate:  func(cfg *Config) { cfg.Server.Port = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "port above 65535",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative body cap",
			mutate:  func(cfg *Config) { cfg.Server.MaxBodyBytes = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "oversized log level",
			mutate:  func(cfg *Config) { cfg.Log.Level = strings.Repeat("x", MaxLevelLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "oversized log dir",
			mutate:  func(cfg *Config) { cfg.Log.Dir = strings.Repeat("a", MaxDirLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "oversized themes dir",
			mutate:  func(cfg *Config) { cfg.Themes.Dir = strings.Repeat("a", MaxDirLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "negative workers",
			mutate:  func(cfg *Config) { cfg.Render.Workers = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "workers above cap",
			mutate:  func(cfg *Config) { cfg.Render.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unparseable timeout",
			mutate:  func(cfg *Config) { cfg.Render.Timeout = "soon" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.Render.Timeout = "-5s" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero timeout",
			mutate:  func(cfg *Config) { cfg.Render.Timeout = "0s" },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("zero config gets all defaults", func(t *testing.T) {
		var cfg Config
		cfg.ApplyDefaults()

		if cfg.Server.Port != DefaultPort {
			t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
		}
		if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
			t.Errorf("MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, DefaultMaxBodyBytes)
		}
		if cfg.Log.Level != DefaultLogLevel {
			t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
		}
		if cfg.Log.Dir != DefaultLogDir {
			t.Errorf("Log.Dir = %q, want %q", cfg.Log.Dir, DefaultLogDir)
		}
		if cfg.Render.Timeout != DefaultTimeout {
			t.Errorf("Render.Timeout = %q, want %q", cfg.Render.Timeout, DefaultTimeout)
		}
	})

	t.Run("explicit values survive", func(t *testing.T) {
		cfg := Config{
			Server: ServerConfig{Port: 9000, MaxBodyBytes: 2048},
			Log:    LogConfig{Level: "debug", Dir: "/var/log/md2wechat"},
			Render: RenderConfig{Workers: 4, Timeout: "1m"},
		}
		cfg.ApplyDefaults()

		if cfg.Server.Port != 9000 {
			t.Errorf("Port = %d, want 9000", cfg.Server.Port)
		}
		if cfg.Server.MaxBodyBytes != 2048 {
			t.Errorf("MaxBodyBytes = %d, want 2048", cfg.Server.MaxBodyBytes)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
		if cfg.Render.Timeout != "1m" {
			t.Errorf("Render.Timeout = %q, want 1m", cfg.Render.Timeout)
		}
	})

	t.Run("themes dir stays empty", func(t *testing.T) {
		var cfg Config
		cfg.ApplyDefaults()
		if cfg.Themes.Dir != "" {
			t.Errorf("Themes.Dir = %q, want empty", cfg.Themes.Dir)
		}
	})
}

func TestTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{
			name:  "default timeout",
			value: DefaultTimeout,
			want:  30 * time.Second,
		},
		{
			name:  "custom timeout",
			value: "2m",
			want:  2 * time.Minute,
		},
		{
			name:  "empty falls back to default",
			value: "",
			want:  30 * time.Second,
		},
		{
			name:  "garbage falls back to default",
			value: "whenever",
			want:  30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Render: RenderConfig{Timeout: tt.value}}
			if got := cfg.Timeout(); got != tt.want {
				t.Errorf("Timeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `server:
  port: 9090
  maxBodyBytes: 4096
log:
  level: debug
render:
  workers: 2
  timeout: 45s
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != 9090 {
			t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
		}
		if cfg.Server.MaxBodyBytes != 4096 {
			t.Errorf("Server.MaxBodyBytes = %d, want 4096", cfg.Server.MaxBodyBytes)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
		if cfg.Render.Workers != 2 {
			t.Errorf("Render.Workers = %d, want 2", cfg.Render.Workers)
		}
		if cfg.Render.Timeout != "45s" {
			t.Errorf("Render.Timeout = %q, want 45s", cfg.Render.Timeout)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("server: [unclosed"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		if err := os.WriteFile(configPath, []byte("serverr:\n  port: 1\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "badport.yaml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 99999\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("config name resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "myconfig.yaml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 8001\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != 8001 {
			t.Errorf("Server.Port = %d, want 8001", cfg.Server.Port)
		}
	})

	t.Run("config name resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "myconfig.yml")
		if err := os.WriteFile(configPath, []byte("server:\n  port: 8002\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != 8002 {
			t.Errorf("Server.Port = %d, want 8002", cfg.Server.Port)
		}
	})

	t.Run("config name prefers yaml over yml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yaml"), []byte("server:\n  port: 8003\n"), 0600); err != nil {
			t.Fatalf("setup yaml: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yml"), []byte("server:\n  port: 8004\n"), 0600); err != nil {
			t.Fatalf("setup yml: %v", err)
		}

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Port != 8003 {
			t.Errorf("Server.Port = %d, want 8003 (should prefer .yaml)", cfg.Server.Port)
		}
	})

	t.Run("unresolvable name returns ErrConfigNotFound", func(t *testing.T) {
		dir := t.TempDir()

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		_, err = LoadConfig("no-such-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}
