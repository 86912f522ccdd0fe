package main

// Notes:
// - exitCodeFor: we test all sentinel errors from md2wechat and config
//   packages, plus wrapped errors to verify the errors.Is() chain works.
// - hintFor: only the mapping is tested here; hint wording belongs to the
//   hints package tests.
// - Exit code constants: we verify Unix conventions (0=success, 1=general,
//   2=usage) and that custom codes stay below 126.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", md2wechat.ErrBrowserConnect, ExitBrowser},
		{"page create", md2wechat.ErrPageCreate, ExitBrowser},
		{"page load", md2wechat.ErrPageLoad, ExitBrowser},
		{"pdf generation", md2wechat.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", md2wechat.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"unknown theme", md2wechat.ErrUnknownTheme, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},
		{"wrapped unknown theme", fmt.Errorf("%w: %q", md2wechat.ErrUnknownTheme, "midnight"), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"wrapped unknown", fmt.Errorf("context: %w", errors.New("unknown")), ExitGeneral},
		{"render failed", md2wechat.ErrRenderFailed, ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := exitCodeFor(tt.err)
			if got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Error to hint mapping
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Run("browser connect suggests env vars", func(t *testing.T) {
		t.Setenv("ROD_BROWSER_BIN", "")

		got := hintFor(md2wechat.ErrBrowserConnect)
		if !strings.Contains(got, "ROD_BROWSER_BIN") {
			t.Errorf("hintFor(ErrBrowserConnect) = %q, want ROD_BROWSER_BIN suggestion", got)
		}
	})

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"deadline suggests timeout flag", context.DeadlineExceeded, "--timeout"},
		{"config not found suggests config flag", config.ErrConfigNotFound, "--config"},
		{"unknown theme lists available", md2wechat.ErrUnknownTheme, "default, grace, simple"},
		{"wrapped unknown theme lists available", fmt.Errorf("%w: %q", md2wechat.ErrUnknownTheme, "x"), "available:"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := hintFor(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor(%v) = %q, want substring %q", tt.err, got, tt.contains)
			}
		})
	}

	t.Run("unmapped error has no hint", func(t *testing.T) {
		if got := hintFor(errors.New("boom")); got != "" {
			t.Errorf("hintFor(unmapped) = %q, want empty", got)
		}
	})

	t.Run("nil error has no hint", func(t *testing.T) {
		if got := hintFor(nil); got != "" {
			t.Errorf("hintFor(nil) = %q, want empty", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix convention compliance
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()
	// Verify exit codes follow Unix conventions
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	// Verify custom codes are below 126 (Unix convention)
	if ExitIO >= 126 {
		t.Errorf("ExitIO = %d, should be < 126", ExitIO)
	}
	if ExitBrowser >= 126 {
		t.Errorf("ExitBrowser = %d, should be < 126", ExitBrowser)
	}
}
