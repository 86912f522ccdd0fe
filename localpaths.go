package md2wechat

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths resolves relative img src and a href values against
// baseDir and rewrites them to absolute file:// URLs. The PDF exporter loads
// pages from a temp file, so images sitting next to the source document are
// only found after this rewrite. URLs, data URIs, anchors, and absolute
// paths pass through untouched. An empty baseDir disables rewriting.
//
// References escaping baseDir (e.g. "../../etc/passwd") are left unchanged.
func RewriteRelativePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, isFragment, err := parseMarkup(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteRefs(root, absBase)

	return renderMarkup(root, isFragment)
}

// parseMarkup parses full documents and fragments differently so fragments
// do not gain an <html><body> wrapper on the way out.
func parseMarkup(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	bodyCtx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), bodyCtx)
	if err != nil {
		return nil, true, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// renderMarkup is the inverse of parseMarkup.
func renderMarkup(root *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteRefs walks the tree rewriting img src and a href attributes.
// Media elements and srcset are left alone.
func rewriteRefs(n *html.Node, absBase string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			rewriteRef(n, "src", absBase)
		case "a":
			rewriteRef(n, "href", absBase)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteRefs(c, absBase)
	}
}

func rewriteRef(n *html.Node, key, absBase string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativeRef(attr.Val) {
			continue
		}
		joined := filepath.Join(absBase, attr.Val)
		if !underDir(joined, absBase) {
			continue
		}
		n.Attr[i].Val = toFileURL(joined)
	}
}

// isRelativeRef reports whether val is a plain relative path.
func isRelativeRef(val string) bool {
	if val == "" || strings.HasPrefix(val, "#") {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "//"} {
		if strings.HasPrefix(val, prefix) {
			return false
		}
	}
	// Rooted paths are absolute even where filepath.IsAbs says otherwise
	// (e.g. "/x" on Windows).
	return !strings.HasPrefix(val, "/") && !filepath.IsAbs(val)
}

// underDir reports whether path stays inside dir after cleaning.
func underDir(path, dir string) bool {
	sep := string(filepath.Separator)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, sep) {
		cleanDir += sep
	}
	return strings.HasPrefix(filepath.Clean(path)+sep, cleanDir)
}

// toFileURL builds a file:// URL, converting Windows separators on the way.
func toFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
