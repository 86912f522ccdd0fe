package md2wechat_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alnah/go-md2wechat"
)

// Example demonstrates basic markdown to HTML conversion.
// The output is a fragment ready for further styling.
func Example() {
	svc, err := md2wechat.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	out, err := svc.Convert(context.Background(), md2wechat.Input{
		Markdown: "# Hello World\n\nThis is a test.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// Check that HTML was generated
	if strings.Contains(out.HTML, "<h1") {
		fmt.Println("HTML generated successfully")
	}
	// Output: HTML generated successfully
}

// Example_withTheme demonstrates rendering a full styled page.
func Example_withTheme() {
	svc, err := md2wechat.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	out, err := svc.Convert(context.Background(), md2wechat.Input{
		Markdown:      "# Elegant Document\n\nStyled with the grace theme.",
		Style:         md2wechat.StyleOptions{Theme: md2wechat.ThemeGrace},
		IncludeStyles: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(out.HTML, "<!DOCTYPE html>") {
		fmt.Println("Styled page generated")
	}
	// Output: Styled page generated
}

// Example_withCustomColors demonstrates overriding the theme palette.
func Example_withCustomColors() {
	svc, err := md2wechat.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	out, err := svc.Convert(context.Background(), md2wechat.Input{
		Markdown: "# Branded Document\n\nCustom palette applied.",
		Style: md2wechat.StyleOptions{
			PrimaryColor: "#2c3e50",
			FontSize:     "16px",
		},
		IncludeStyles: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(out.HTML, "#2c3e50") {
		fmt.Println("Custom color applied")
	}
	// Output: Custom color applied
}

// Example_withCodeHighlighting demonstrates syntax highlighting with
// Mac-style window signs and line numbers.
func Example_withCodeHighlighting() {
	svc, err := md2wechat.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	markdown := "# Code Sample\n\n```go\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```"

	out, err := svc.Convert(context.Background(), md2wechat.Input{
		Markdown: markdown,
		Options: md2wechat.RenderOptions{
			IsMacCodeBlock:   true,
			IsShowLineNumber: true,
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(out.HTML, `class="chroma"`) && strings.Contains(out.HTML, `class="mac-sign"`) {
		fmt.Println("Code highlighted")
	}
	// Output: Code highlighted
}

// Example_withCitations demonstrates footnote-style link citations,
// the format WeChat readers expect since articles cannot carry
// external hyperlinks.
func Example_withCitations() {
	svc, err := md2wechat.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	out, err := svc.Convert(context.Background(), md2wechat.Input{
		Markdown: "Read the [Go blog](https://go.dev/blog) for more.",
		Options:  md2wechat.RenderOptions{CiteStatus: true},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if strings.Contains(out.HTML, "<sup>[1]</sup>") {
		fmt.Println("Citations appended")
	}
	// Output: Citations appended
}

// Example_wechatCompatible demonstrates output ready for pasting into
// the WeChat editor, which strips CSS variables.
func Example_wechatCompatible() {
	svc, err := md2wechat.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	out, err := svc.Convert(context.Background(), md2wechat.Input{
		Markdown:      "# Ready to Publish\n\nNo CSS variables remain.",
		Style:         md2wechat.StyleOptions{WechatCompatible: true},
		IncludeStyles: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if !strings.Contains(out.HTML, "var(--md") {
		fmt.Println("WeChat compatible page generated")
	}
	// Output: WeChat compatible page generated
}

// ExampleThemes demonstrates listing the built-in themes.
func ExampleThemes() {
	for _, theme := range md2wechat.Themes() {
		fmt.Println(theme.Name)
	}
	// Output:
	// default
	// grace
	// simple
}

// Example_concurrent demonstrates parallel batch processing. A single
// Service is safe for concurrent use; conversions draw renderers from
// an internal pool.
func Example_concurrent() {
	svc, err := md2wechat.New(md2wechat.WithWorkers(2))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer svc.Close()

	docs := []string{
		"# Document 1\n\nFirst document.",
		"# Document 2\n\nSecond document.",
	}

	results := make(chan bool, len(docs))
	var wg sync.WaitGroup

	for _, doc := range docs {
		wg.Add(1)
		go func(markdown string) {
			defer wg.Done()

			out, err := svc.Convert(context.Background(), md2wechat.Input{
				Markdown: markdown,
			})
			results <- err == nil && strings.Contains(out.HTML, "Document")
		}(doc)
	}

	wg.Wait()
	close(results)

	success := 0
	for ok := range results {
		if ok {
			success++
		}
	}
	fmt.Printf("Processed %d documents\n", success)
	// Output: Processed 2 documents
}
