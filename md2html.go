package md2wechat

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to an HTML fragment using goldmark (pure Go),
// with the extended-syntax pre-passes and article post-passes around it.
// Not safe for concurrent use; the pool hands each conversion a dedicated
// instance.
type Renderer struct {
	md   goldmark.Markdown
	opts RenderOptions
	pre  MarkdownPreprocessor
	post HTMLPostprocessor
}

// NewRenderer creates a Renderer configured for opts.
func NewRenderer(opts RenderOptions) *Renderer {
	r := &Renderer{
		pre:  &ExtendedSyntaxPreprocessor{},
		post: &WeChatPostprocessor{},
	}
	r.Reset(opts)
	return r
}

// Reset rebuilds the goldmark instance for opts.
// Cheap enough to run once per conversion.
func (r *Renderer) Reset(opts RenderOptions) {
	formatOptions := []chromahtml.Option{
		chromahtml.WithClasses(true), // palette comes from the stylesheet
	}
	if opts.IsShowLineNumber {
		formatOptions = append(formatOptions, chromahtml.WithLineNumbers(true))
	}

	r.opts = opts
	r.md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			emoji.Emoji,        // :smile: shortcodes
			mathjax.MathJax,    // $...$ and $$...$$ formulas
			highlighting.NewHighlighting(
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(formatOptions...),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithUnsafe(),    // Raw HTML and SVG must pass through
		),
	)
}

// Render converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (r *Renderer) Render(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	// Snapshot the fields the goroutine needs. On cancellation Render
	// returns while the goroutine is still converting, and the renderer
	// goes back to the pool where the next conversion's Reset rewrites
	// md and opts; the abandoned goroutine must keep working on its own
	// copies.
	md, opts, pre, post := r.md, r.opts, r.pre, r.post

	done := make(chan result, 1)

	go func() {
		prepared := pre.PreprocessMarkdown(content)

		var buf bytes.Buffer
		if err := md.Convert([]byte(prepared), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrRenderFailed, err)}
			return
		}
		done <- result{html: post.PostprocessHTML(buf.String(), opts)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
