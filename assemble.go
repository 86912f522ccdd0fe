package md2wechat

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2wechat/internal/assets"
)

// baseThemeName is the shared stylesheet every theme builds on.
const baseThemeName = "base"

// documentShell wraps the scoped stylesheet and the rendered fragment in a
// complete HTML5 page.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Document</title>
<style>
%s
</style>
</head>
<body>
<div class="md-container">
%s
</div>
</body>
</html>`

// containerRule styles the wrapping element itself. It is appended after
// scoping; the scoper would prefix it into an unreachable
// ".md-container .md-container" selector.
const containerRule = `.md-container {
  font-family: var(--md-font-family);
  font-size: var(--md-font-size);
  line-height: var(--md-line-height);
  color: hsl(var(--foreground));
  max-width: 677px;
  margin: 0 auto;
  padding: 20px;
  word-break: break-word;
}`

// pageAssembler abstracts full-page assembly from a rendered fragment.
type pageAssembler interface {
	Assemble(contentHTML string, style StyleOptions, includeStyles bool) (string, error)
}

// PageAssembler builds publishable HTML pages from rendered fragments. Theme
// CSS comes through the configured asset loader.
type PageAssembler struct {
	loader assets.AssetLoader
}

// NewPageAssembler creates a PageAssembler reading themes through loader.
func NewPageAssembler(loader assets.AssetLoader) *PageAssembler {
	return &PageAssembler{loader: loader}
}

// Assemble wraps contentHTML in a styled document per style.
// With includeStyles false the fragment is returned untouched.
func (a *PageAssembler) Assemble(contentHTML string, style StyleOptions, includeStyles bool) (string, error) {
	if !includeStyles {
		return contentHTML, nil
	}

	style = style.WithDefaults()

	css := strings.Join([]string{
		buildCSSVariables(style),
		a.loadThemeCSS(baseThemeName),
		a.loadThemeCSS(style.Theme),
		highlightCSS(style.CodeTheme),
	}, "\n")
	scoped := scopeCSS(css, DefaultScope) + "\n" + containerRule

	page := fmt.Sprintf(documentShell, scoped, contentHTML)

	if style.WechatCompatible {
		page = resolveWeChatVars(page, style)
	}

	if style.InlineStyles {
		inlined, err := applyInlineStyles(page)
		if err != nil {
			return "", err
		}
		page = fixWeChatHTML(inlined)
		if style.WechatCompatible {
			// Inlining can surface variable references again; second pass
			// is best-effort cleanup.
			page = resolveWeChatVars(page, style)
		}
	}

	return page, nil
}

// loadThemeCSS returns the named stylesheet, or empty on any failure.
// A missing theme degrades to the base look with a warning; conversions
// never fail over presentation assets.
func (a *PageAssembler) loadThemeCSS(name string) string {
	content, err := a.loader.LoadTheme(name)
	if err != nil {
		logrus.WithError(err).WithField("theme", name).Warn("failed to load theme stylesheet")
		return ""
	}
	return content
}

// Compile-time interface check.
var _ pageAssembler = (*PageAssembler)(nil)
