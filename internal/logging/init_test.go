package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  logrus.Level
	}{
		{
			name:  "debug",
			input: "debug",
			want:  logrus.DebugLevel,
		},
		{
			name:  "warn",
			input: "warn",
			want:  logrus.WarnLevel,
		},
		{
			name:  "error",
			input: "error",
			want:  logrus.ErrorLevel,
		},
		{
			name:  "unknown falls back to info",
			input: "chatty",
			want:  logrus.InfoLevel,
		},
		{
			name:  "empty falls back to info",
			input: "",
			want:  logrus.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetFileWriter(t *testing.T) {
	dir := t.TempDir()

	w, err := getFileWriter(LogTypeSystem, dir)
	if err != nil {
		t.Fatalf("getFileWriter() error = %v", err)
	}
	if w == nil {
		t.Fatal("getFileWriter() returned nil writer")
	}

	// The per-type directory must exist after the call.
	info, err := os.Stat(filepath.Join(dir, LogTypeSystem))
	if err != nil {
		t.Fatalf("log type directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("log type path is not a directory")
	}
}

// InitLogger touches package-global state, so the lifecycle is covered in a
// single ordered test instead of parallel subtests.
func TestInitLogger(t *testing.T) {
	dir := t.TempDir()

	if err := InitLogger(Options{Level: "debug", Dir: dir}); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}

	system := GetSystemLogger()
	if system.GetLevel() != logrus.DebugLevel {
		t.Errorf("system level = %v, want debug", system.GetLevel())
	}

	access := GetAccessLogger()
	if access == nil {
		t.Fatal("GetAccessLogger() returned nil")
	}
	if access == system {
		t.Error("access logger should be distinct from the system logger after init")
	}
	if _, ok := access.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("access formatter = %T, want *logrus.JSONFormatter", access.Formatter)
	}

	// Both log type directories exist.
	for _, logType := range []string{LogTypeSystem, LogTypeAccess} {
		if _, err := os.Stat(filepath.Join(dir, logType)); err != nil {
			t.Errorf("missing %s log directory: %v", logType, err)
		}
	}
}
