package md2wechat

import (
	"bytes"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/sirupsen/logrus"
)

// chromaCommentPattern matches the /* TokenType */ comment the formatter
// writes before every rule.
var chromaCommentPattern = regexp.MustCompile(`/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`)

// highlightCSS renders the class-based palette for the named chroma style.
// Unknown names fall back to chroma's fallback palette. A formatter failure
// degrades to an empty palette with a warning; code blocks then render
// unhighlighted instead of the whole conversion failing. The per-rule
// comments are stripped: the scoper would fold them into selector lists and
// break the downstream style inliner.
func highlightCSS(codeTheme string) string {
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, styles.Get(codeTheme)); err != nil {
		logrus.WithError(err).WithField("code_theme", codeTheme).
			Warn("failed to build highlight palette")
		return ""
	}
	return chromaCommentPattern.ReplaceAllString(buf.String(), "")
}
