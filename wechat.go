package md2wechat

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// foregroundHex is the literal equivalent of hsl(0 0% 25%).
	foregroundHex = "#404040"

	// tspanFillStyle forces SVG text glyphs to a legible gray; WeChat drops
	// the inherited fill and renders them white otherwise.
	tspanFillStyle = "fill: #333333; color: #333333; stroke: #333333;"
)

var (
	rootBlockPattern = regexp.MustCompile(`:root\s*\{[^{}]*\}`)
	calcFontPattern  = regexp.MustCompile(`calc\(15px \* ([0-9.]+)\)`)
	fontSizeNumber   = regexp.MustCompile(`^([0-9.]+)`)

	imgWidthTagPattern  = regexp.MustCompile(`<img\b[^>]*\swidth="\d+"[^>]*>`)
	imgHeightTagPattern = regexp.MustCompile(`<img\b[^>]*\sheight="\d+"[^>]*>`)
	widthAttrPattern    = regexp.MustCompile(`\swidth="(\d+)"`)
	heightAttrPattern   = regexp.MustCompile(`\sheight="(\d+)"`)
	styleAttrPattern    = regexp.MustCompile(`\sstyle="([^"]*)"`)
	tspanTagPattern     = regexp.MustCompile(`<tspan\b[^>]*>`)
)

// resolveWeChatVars replaces every CSS custom property reference with its
// literal value. WeChat strips :root declarations on paste, so var()
// references must be resolved before publication. The replacements are
// ordered: the composite hsl(var(--foreground)) form has to resolve before
// the bare var(--foreground) pattern, and the hex rewrite keys on the exact
// intermediate hsl literal.
func resolveWeChatVars(text string, opts StyleOptions) string {
	opts = opts.WithDefaults()

	text = strings.ReplaceAll(text, "hsl(var(--foreground))", "hsl("+foregroundHSL+")")
	text = strings.ReplaceAll(text, "hsl("+foregroundHSL+")", foregroundHex)
	text = strings.ReplaceAll(text, "var(--md-primary-color)", opts.PrimaryColor)
	text = strings.ReplaceAll(text, "var(--md-font-size)", opts.FontSize)
	text = strings.ReplaceAll(text, "var(--md-font-family)", opts.FontFamily)
	// Line height resolves to the stock 1.75 regardless of the configured
	// value.
	text = strings.ReplaceAll(text, "var(--md-line-height)", DefaultLineHeight)
	text = strings.ReplaceAll(text, "var(--foreground)", foregroundHSL)
	text = strings.ReplaceAll(text, "var(--blockquote-background)", blockquoteBackground)
	text = rootBlockPattern.ReplaceAllString(text, "")
	return resolveCalcFontSize(text, opts.FontSize)
}

// resolveCalcFontSize evaluates calc(15px * N) expressions against the
// configured font size. The stock stylesheets size headings as multiples of
// the 15px base; evaluating against the real base keeps proportions when it
// changes.
func resolveCalcFontSize(text, fontSize string) string {
	base := 15.0
	if m := fontSizeNumber.FindStringSubmatch(fontSize); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			base = v
		}
	}

	return calcFontPattern.ReplaceAllStringFunc(text, func(expr string) string {
		m := calcFontPattern.FindStringSubmatch(expr)
		mult, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return expr
		}
		return strconv.FormatFloat(base*mult, 'f', -1, 64) + "px"
	})
}

// fixWeChatHTML repairs markup the WeChat editor mishandles: explicit image
// width/height attributes move into inline styles, and SVG text glyphs get a
// forced fill. These are narrow regex passes over renderer output, not a DOM
// transform.
func fixWeChatHTML(html string) string {
	html = moveSizeAttr(html, imgWidthTagPattern, widthAttrPattern, "width")
	html = moveSizeAttr(html, imgHeightTagPattern, heightAttrPattern, "height")
	return tspanTagPattern.ReplaceAllStringFunc(html, func(tag string) string {
		return insertStyle(tag, tspanFillStyle, false)
	})
}

// moveSizeAttr rewrites a pixel size attribute on matching tags into the
// style attribute and drops the original attribute.
func moveSizeAttr(html string, tagPattern, attrPattern *regexp.Regexp, prop string) string {
	return tagPattern.ReplaceAllStringFunc(html, func(tag string) string {
		m := attrPattern.FindStringSubmatch(tag)
		if m == nil {
			return tag
		}
		tag = attrPattern.ReplaceAllString(tag, "")
		return insertStyle(tag, prop+": "+m[1]+"px;", true)
	})
}

// insertStyle adds decl to the tag's style attribute, creating the attribute
// when absent. prepend controls whether decl lands before or after existing
// declarations.
func insertStyle(tag, decl string, prepend bool) string {
	loc := styleAttrPattern.FindStringSubmatchIndex(tag)
	if loc == nil {
		attr := ` style="` + decl + `"`
		if strings.HasSuffix(tag, "/>") {
			return tag[:len(tag)-2] + attr + "/>"
		}
		return tag[:len(tag)-1] + attr + ">"
	}
	if prepend {
		return tag[:loc[2]] + decl + " " + tag[loc[2]:]
	}

	value := strings.TrimSpace(tag[loc[2]:loc[3]])
	if value != "" && !strings.HasSuffix(value, ";") {
		value += ";"
	}
	if value != "" {
		value += " "
	}
	return tag[:loc[2]] + value + decl + tag[loc[3]:]
}
