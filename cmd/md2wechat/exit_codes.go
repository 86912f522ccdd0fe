package main

import (
	"context"
	"errors"
	"os"

	"github.com/samber/lo"

	md2wechat "github.com/alnah/go-md2wechat"
	"github.com/alnah/go-md2wechat/internal/config"
	"github.com/alnah/go-md2wechat/internal/hints"
)

// Exit codes for md2wechat CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2wechat.ErrBrowserConnect) ||
		errors.Is(err, md2wechat.ErrPageCreate) ||
		errors.Is(err, md2wechat.ErrPageLoad) ||
		errors.Is(err, md2wechat.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2wechat.ErrUnknownTheme) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for an error, or "" when none applies.
// The hint is meant to be appended directly to the error message.
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2wechat.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, md2wechat.ErrUnknownTheme):
		names := lo.Map(md2wechat.Themes(), func(t md2wechat.Theme, _ int) string {
			return t.Name
		})
		return hints.ForUnknownTheme(names)
	}
	return ""
}
