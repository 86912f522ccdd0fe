package md2wechat

import (
	"regexp"
	"strings"
)

// DefaultScope is the container selector wrapped around rendered content.
const DefaultScope = ".md-container"

// simpleRulePattern matches one flat `selector-list { declarations }` block.
// Declarations must not contain braces: nested rules are not supported, a
// known limitation of this textual transform.
var simpleRulePattern = regexp.MustCompile(`^([^{}]+)\{([^{}]*)\}`)

// scopeCSS prefixes every flat rule's selector list with scope.
// `@`-rules (media, keyframes, font-face, import, ...) and `:root` rules pass
// through unscoped and byte-identical: at-rule semantics must not change, and
// custom properties have to stay global to keep var() references working.
// This is a textual transform over the narrow shape the theme files contain,
// not a CSS parser; comments and braces inside string values may mis-tokenize
// (a comment before a selector rides along inside the scoped selector list).
func scopeCSS(css, scope string) string {
	if scope == "" {
		scope = DefaultScope
	}

	var out strings.Builder
	out.Grow(len(css) + len(css)/4)

	pos := 0
	for pos < len(css) {
		rest := css[pos:]

		// Whitespace between rules passes through.
		trimmed := strings.TrimLeft(rest, " \t\r\n")
		lead := len(rest) - len(trimmed)
		out.WriteString(rest[:lead])
		pos += lead
		if pos >= len(css) {
			break
		}
		rest = css[pos:]

		if strings.HasPrefix(rest, "@") {
			end := atRuleEnd(css, pos)
			out.WriteString(css[pos:end])
			pos = end
			continue
		}
		if strings.HasPrefix(rest, ":root") {
			end := blockEnd(css, pos)
			out.WriteString(css[pos:end])
			pos = end
			continue
		}

		m := simpleRulePattern.FindStringSubmatch(rest)
		if m == nil {
			// Nothing rule-shaped ahead; emit the remainder unchanged.
			out.WriteString(rest)
			break
		}
		out.WriteString(scopeSelectors(m[1], scope))
		out.WriteString("{")
		out.WriteString(m[2])
		out.WriteString("}")
		pos += len(m[0])
	}

	return out.String()
}

// scopeSelectors splits a selector list on commas, trims each selector and
// prefixes it with scope, rejoining with ", ".
func scopeSelectors(selectorList, scope string) string {
	parts := strings.Split(selectorList, ",")
	for i, sel := range parts {
		parts[i] = scope + " " + strings.TrimSpace(sel)
	}
	return strings.Join(parts, ", ") + " "
}

// blockEnd returns the index just past the brace block opened after startPos,
// counting nested braces. Returns len(css) when no block opens.
func blockEnd(css string, startPos int) int {
	open := strings.Index(css[startPos:], "{")
	if open == -1 {
		return len(css)
	}

	depth := 1
	pos := startPos + open + 1
	for pos < len(css) && depth > 0 {
		switch css[pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		pos++
	}
	return pos
}

// atRuleEnd returns the index just past an at-rule starting at startPos.
// Statement at-rules (@import, @charset, ...) end at the first semicolon;
// block at-rules (@media, @keyframes, ...) end at their matching brace.
func atRuleEnd(css string, startPos int) int {
	rest := css[startPos:]
	semi := strings.Index(rest, ";")
	open := strings.Index(rest, "{")

	if open == -1 {
		if semi == -1 {
			return len(css)
		}
		return startPos + semi + 1
	}
	if semi != -1 && semi < open {
		return startPos + semi + 1
	}
	return blockEnd(css, startPos)
}
