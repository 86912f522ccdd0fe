package md2wechat

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidMarkdownType = errors.New("markdown must be a string")
	ErrRenderFailed        = errors.New("failed to render markdown")
	ErrInlineStyles        = errors.New("failed to inline styles")

	// Request decoding errors.
	ErrBodyTooLarge = errors.New("request body exceeds limit")
	ErrInvalidJSON  = errors.New("invalid JSON payload")

	// Style options validation errors.
	ErrUnknownTheme = errors.New("unknown theme")

	// PDF export errors.
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
)
