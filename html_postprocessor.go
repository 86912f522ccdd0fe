package md2wechat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Precompiled regex patterns for performance.
var (
	// Standalone image paragraphs eligible for figure conversion
	standaloneImagePattern = regexp.MustCompile(`<p>(<img\b[^>]*?/?>)</p>`)

	// Image attribute extraction
	altAttrPattern   = regexp.MustCompile(`\balt="([^"]*)"`)
	titleAttrPattern = regexp.MustCompile(`\btitle="([^"]*)"`)

	// Highlighted code block opener
	chromaPrePattern = regexp.MustCompile(`<pre\b[^>]*\bclass="[^"]*\bchroma\b[^"]*"[^>]*>`)

	// External links; footnote and in-page anchors (#...) never match
	externalLinkPattern = regexp.MustCompile(`(?s)<a\b[^>]*?\bhref="(https?://[^"]*)"[^>]*>(.*?)</a>`)

	// HTML tags, for plain-text extraction
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// macSignSVG draws the three traffic-light dots shown atop mac-style code
// blocks.
const macSignSVG = `<span class="mac-sign" style="padding: 10px 14px 0;"><svg xmlns="http://www.w3.org/2000/svg" version="1.1" x="0px" y="0px" width="45px" height="13px" viewBox="0 0 450 130"><ellipse cx="65" cy="65" rx="50" ry="52" stroke="rgb(220,60,54)" stroke-width="2" fill="rgb(237,108,96)"></ellipse><ellipse cx="225" cy="65" rx="50" ry="52" stroke="rgb(218,151,33)" stroke-width="2" fill="rgb(247,193,81)"></ellipse><ellipse cx="385" cy="65" rx="50" ry="52" stroke="rgb(27,161,37)" stroke-width="2" fill="rgb(100,200,86)"></ellipse></svg></span>`

// sanitizePolicy permits the markup the pipeline itself emits: highlighter
// spans, figures, footnote superscripts, and the mac sign SVG.
var sanitizePolicy = buildSanitizePolicy()

func buildSanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "style").Globally()
	// UGCPolicy drops span; the highlighter emits token spans and the mac
	// sign wrapper is one too.
	p.AllowElements("span", "figure", "figcaption", "mark", "section", "svg", "ellipse")
	p.AllowAttrs("xmlns", "version", "x", "y", "width", "height", "viewBox").OnElements("svg")
	p.AllowAttrs("cx", "cy", "rx", "ry", "stroke", "stroke-width", "fill").OnElements("ellipse")
	return p
}

// HTMLPostprocessor defines the contract for HTML postprocessing.
type HTMLPostprocessor interface {
	PostprocessHTML(htmlContent string, opts RenderOptions) string
}

// WeChatPostprocessor applies the article-facing HTML rewrites.
type WeChatPostprocessor struct{}

// PostprocessHTML applies the enabled rewrites in order: figure captions,
// mac code sign, link citations, sanitization.
func (p *WeChatPostprocessor) PostprocessHTML(htmlContent string, opts RenderOptions) string {
	htmlContent = ApplyFigureCaptions(htmlContent, opts.Legend)
	if opts.IsMacCodeBlock {
		htmlContent = InjectMacSign(htmlContent)
	}
	if opts.CiteStatus {
		htmlContent = RewriteCitations(htmlContent)
	}
	if opts.Sanitize {
		htmlContent = SanitizeHTML(htmlContent)
	}
	return htmlContent
}

// ApplyFigureCaptions wraps standalone image paragraphs in <figure> with a
// <figcaption> chosen by the legend policy. An image whose chosen caption
// source is empty stays a plain paragraph.
func ApplyFigureCaptions(htmlContent, legend string) string {
	if legend == "" || legend == LegendNone {
		return htmlContent
	}

	return standaloneImagePattern.ReplaceAllStringFunc(htmlContent, func(par string) string {
		m := standaloneImagePattern.FindStringSubmatch(par)
		imgTag := m[1]
		caption := captionText(imgTag, legend)
		if caption == "" {
			return par
		}
		return "<figure>" + imgTag + "<figcaption>" + caption + "</figcaption></figure>"
	})
}

// captionText picks the caption source for an image per the legend policy.
// Attribute values are already entity-escaped; they are reused verbatim.
func captionText(imgTag, legend string) string {
	alt := attrValue(imgTag, altAttrPattern)
	title := attrValue(imgTag, titleAttrPattern)

	switch legend {
	case LegendAlt:
		return alt
	case LegendTitle:
		return title
	case LegendAltTitle:
		if alt != "" {
			return alt
		}
		return title
	case LegendTitleAlt:
		if title != "" {
			return title
		}
		return alt
	}
	return ""
}

func attrValue(tag string, pattern *regexp.Regexp) string {
	if m := pattern.FindStringSubmatch(tag); m != nil {
		return m[1]
	}
	return ""
}

// InjectMacSign inserts the traffic-light SVG after each highlighted code
// block opener. Mermaid and unhighlighted blocks are left alone.
func InjectMacSign(htmlContent string) string {
	return chromaPrePattern.ReplaceAllStringFunc(htmlContent, func(tag string) string {
		return tag + macSignSVG
	})
}

// RewriteCitations replaces external links with their text plus a numbered
// superscript and appends a reference list titled 引用链接. WeChat strips
// anchors from article bodies, so the URLs must survive as visible text.
func RewriteCitations(htmlContent string) string {
	type citation struct {
		title string
		url   string
	}
	var refs []citation

	rewritten := externalLinkPattern.ReplaceAllStringFunc(htmlContent, func(link string) string {
		m := externalLinkPattern.FindStringSubmatch(link)
		url, text := m[1], m[2]
		refs = append(refs, citation{title: stripHTMLTags(text), url: url})
		return fmt.Sprintf("%s<sup>[%d]</sup>", text, len(refs))
	})
	if len(refs) == 0 {
		return htmlContent
	}

	var buf strings.Builder
	buf.WriteString(rewritten)
	buf.WriteString(`<h4 class="footnotes-title">引用链接</h4><p class="footnotes">`)
	for i, ref := range refs {
		if i > 0 {
			buf.WriteString("<br>")
		}
		fmt.Fprintf(&buf, "[%d] ", i+1)
		if ref.title != "" && ref.title != ref.url {
			buf.WriteString(ref.title)
			buf.WriteString(": ")
		}
		buf.WriteString("<i>" + ref.url + "</i>")
	}
	buf.WriteString("</p>")
	return buf.String()
}

// SanitizeHTML strips markup outside the allowed set.
func SanitizeHTML(htmlContent string) string {
	return sanitizePolicy.Sanitize(htmlContent)
}

// stripHTMLTags removes HTML tags from a string and trims whitespace.
func stripHTMLTags(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

var _ HTMLPostprocessor = (*WeChatPostprocessor)(nil)
