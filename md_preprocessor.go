package md2wechat

import (
	"html"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)

	// Fenced code block delimiter (backticks or tildes)
	fencedCodeBlock = regexp.MustCompile("^(```|~~~)")

	// Fenced mermaid diagram opener
	mermaidFence = regexp.MustCompile("^(```|~~~)\\s*mermaid\\s*$")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(content string) string
}

// ExtendedSyntaxPreprocessor rewrites extended syntax the renderer does not
// understand natively into plain Markdown and raw HTML it passes through.
type ExtendedSyntaxPreprocessor struct{}

// PreprocessMarkdown applies all transformations in order: normalize line
// endings first, then fence rewrites, then inline syntax, then spacing.
// Fenced code block interiors are left untouched by every pass.
func (p *ExtendedSyntaxPreprocessor) PreprocessMarkdown(content string) string {
	content = NormalizeLineEndings(content)
	content = ConvertMermaidBlocks(content)
	content = ConvertHighlights(content)
	content = CompressBlankLines(content)
	return content
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ConvertHighlights transforms ==text== to <mark>text</mark> outside fenced
// code blocks. Highlights spanning lines are not supported.
func ConvertHighlights(content string) string {
	return processLinesOutsideCode(content, func(line string) string {
		return highlightPattern.ReplaceAllString(line, "<mark>$1</mark>")
	})
}

// ConvertMermaidBlocks rewrites ```mermaid fences into raw
// <pre class="mermaid"> blocks for client-side diagram rendering. The
// diagram source is HTML-escaped; raw HTML passthrough re-emits it verbatim
// instead of highlighting it as code.
func ConvertMermaidBlocks(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	inCodeBlock := false
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if inCodeBlock {
			if fencedCodeBlock.MatchString(line) {
				inCodeBlock = false
			}
			result = append(result, line)
			continue
		}

		if mermaidFence.MatchString(line) {
			diagram, next, ok := collectFence(lines, i+1)
			if !ok {
				// Unterminated fence: leave for the renderer to handle.
				result = append(result, line)
				continue
			}
			escaped := html.EscapeString(strings.Join(diagram, "\n"))
			result = append(result, `<pre class="mermaid">`+escaped+`</pre>`)
			i = next
			continue
		}

		if fencedCodeBlock.MatchString(line) {
			inCodeBlock = true
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

// collectFence gathers lines from start until the closing fence delimiter.
// Returns the collected lines, the index of the closing delimiter, and
// whether a closing delimiter was found.
func collectFence(lines []string, start int) ([]string, int, bool) {
	var collected []string
	for i := start; i < len(lines); i++ {
		if fencedCodeBlock.MatchString(lines[i]) {
			return collected, i, true
		}
		collected = append(collected, lines[i])
	}
	return nil, 0, false
}

// CompressBlankLines limits consecutive blank lines to 2 outside fenced code
// blocks.
func CompressBlankLines(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	inCodeBlock := false
	blankRun := 0
	for _, line := range lines {
		if fencedCodeBlock.MatchString(line) {
			inCodeBlock = !inCodeBlock
			blankRun = 0
			result = append(result, line)
			continue
		}
		if inCodeBlock {
			result = append(result, line)
			continue
		}
		if isBlankLine(line) {
			blankRun++
			if blankRun > 2 {
				continue
			}
		} else {
			blankRun = 0
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

// processLinesOutsideCode applies transform to each line outside fenced code
// blocks.
func processLinesOutsideCode(content string, transform func(line string) string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	inCodeBlock := false
	for _, line := range lines {
		if fencedCodeBlock.MatchString(line) {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
			continue
		}
		if inCodeBlock {
			result = append(result, line)
			continue
		}
		result = append(result, transform(line))
	}

	return strings.Join(result, "\n")
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

var _ MarkdownPreprocessor = (*ExtendedSyntaxPreprocessor)(nil)
