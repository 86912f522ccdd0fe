// Package md2wechat converts Markdown into HTML ready to paste into the
// WeChat public account editor.
//
// # Quick Start
//
// Create a service, convert markdown, and close when done:
//
//	svc, err := md2wechat.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	out, err := svc.Convert(ctx, md2wechat.Input{
//	    Markdown:      "# Hello\n\nWorld",
//	    IncludeStyles: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.HTML)
//
// With IncludeStyles the result is a full standalone page; without it only
// the rendered fragment is returned.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Markdown preprocessing (line normalization, ==highlight== syntax)
//  2. Markdown to HTML via Goldmark (GFM, math, emoji, syntax highlighting)
//  3. HTML postprocessing (citations, mac-style code frames, sanitizing)
//  4. Page assembly (theme CSS, scoping, WeChat variable resolution,
//     style inlining)
//
// # Styling
//
// StyleOptions picks a theme and tunes the palette:
//
//	out, err := svc.Convert(ctx, md2wechat.Input{
//	    Markdown: content,
//	    Style: md2wechat.StyleOptions{
//	        Theme:            md2wechat.ThemeGrace,
//	        PrimaryColor:     "#d14748",
//	        CodeTheme:        "monokai",
//	        WechatCompatible: true,
//	        InlineStyles:     true,
//	    },
//	    IncludeStyles: true,
//	})
//
// WechatCompatible resolves CSS custom properties to literal values, and
// InlineStyles turns stylesheet rules into style attributes; together they
// produce HTML that survives pasting into the WeChat editor. Themes()
// lists the built-in themes.
//
// # Concurrency
//
// A Service is safe for concurrent use. Rendering goes through an internal
// renderer pool sized from GOMAXPROCS; WithWorkers overrides the size:
//
//	svc, err := md2wechat.New(
//	    md2wechat.WithWorkers(8),
//	    md2wechat.WithTimeout(time.Minute),
//	)
//
// # Custom Themes
//
// WithThemesDir points theme lookup at a directory; files there override
// the embedded themes of the same name, and the embedded set remains the
// fallback:
//
//	svc, err := md2wechat.New(md2wechat.WithThemesDir("/etc/md2wechat/themes"))
//
// Theme directory structure:
//
//	themes/
//	├── default.css
//	└── neon.css
//
// # PDF Export
//
// ExportPDF renders assembled HTML to a PDF snapshot using headless Chrome.
// The go-rod library downloads a managed Chromium on first run
// (~/.cache/rod/browser/).
//
//	pdf, err := svc.ExportPDF(ctx, out.HTML)
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2wechat
