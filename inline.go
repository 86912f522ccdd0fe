package md2wechat

import (
	"fmt"

	"github.com/aymerick/douceur/inliner"
)

// applyInlineStyles collapses the document's <style> rules into per-element
// style attributes. The inliner does not resolve var() references; callers
// resolve those separately before or after inlining.
func applyInlineStyles(html string) (string, error) {
	inlined, err := inliner.Inline(html)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInlineStyles, err)
	}
	return inlined, nil
}
