package md2wechat

import (
	"fmt"
	"strings"
)

// Fixed variable values not exposed through StyleOptions.
const (
	// foregroundHSL is the body text color as raw HSL components,
	// consumed by theme CSS as hsl(var(--foreground)).
	foregroundHSL = "0 0% 25%"

	// blockquoteBackground fills blockquote boxes.
	blockquoteBackground = "#f7f7f7"
)

// buildCSSVariables generates the :root custom-properties block for the
// given style options. Pure function; callers apply defaults first.
func buildCSSVariables(opts StyleOptions) string {
	return fmt.Sprintf(`:root {
  --md-primary-color: %s;
  --md-font-size: %s;
  --md-font-family: %s;
  --md-line-height: %s;
  --foreground: %s;
  --blockquote-background: %s;
}
`,
		escapeCSSValue(opts.PrimaryColor),
		escapeCSSValue(opts.FontSize),
		escapeCSSValue(opts.FontFamily),
		escapeCSSValue(opts.LineHeight),
		foregroundHSL,
		blockquoteBackground,
	)
}

// escapeCSSValue strips characters that would break out of a CSS declaration
// value. Style option strings come straight from request JSON, so this is the
// injection boundary for user-controlled values landing in a <style> block.
// Quotes stay: font stacks legitimately contain them.
func escapeCSSValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '{', '}', ';', '<', '>', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
