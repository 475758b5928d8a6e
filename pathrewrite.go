package flowsnap

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths resolves relative image and link paths against
// baseDir and rewrites them as file:// URLs. Exported documents render
// from a temp file, so paths relative to the source document would
// otherwise point nowhere. An empty baseDir returns the document
// unchanged.
//
// Rewrites img[src] and a[href]. Anchors, absolute paths, and anything
// with a scheme (http, https, file, data, mailto) are left alone, as
// are paths that would escape baseDir.
func RewriteRelativePaths(doc, baseDir string) (string, error) {
	if baseDir == "" {
		return doc, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve base directory: %w", err)
	}

	root, isFragment, err := parseDocument(doc)
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	rewriteTree(root, absBase)

	out, err := renderDocument(root, isFragment)
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}

	return out, nil
}

// parseDocument handles both full documents and fragments. Fragments
// are parsed in body context so the parser does not wrap them in
// html/head/body elements that the output would then carry.
func parseDocument(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		root, err := html.Parse(strings.NewReader(content))
		return root, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}

	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

func renderDocument(root *html.Node, isFragment bool) (string, error) {
	var b strings.Builder

	if !isFragment {
		if err := html.Render(&b, root); err != nil {
			return "", err
		}

		return b.String(), nil
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func rewriteTree(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", baseDir)
		case atom.A:
			rewriteAttr(n, "href", baseDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteTree(c, baseDir)
	}
}

func rewriteAttr(n *html.Node, key, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !shouldRewrite(attr.Val) {
			continue
		}

		abs := filepath.Join(baseDir, attr.Val)

		// Joined paths that escape the base directory stay untouched.
		if !containedIn(abs, baseDir) {
			continue
		}

		n.Attr[i].Val = fileURL(abs)
	}
}

// shouldRewrite reports whether val is a plain relative path. Anything
// already addressable by the browser is left as-is.
func shouldRewrite(val string) bool {
	if val == "" || strings.HasPrefix(val, "#") || strings.HasPrefix(val, "//") {
		return false
	}

	if u, err := url.Parse(val); err == nil && u.Scheme != "" {
		return false
	}

	return !filepath.IsAbs(val)
}

// containedIn reports whether abs sits under dir after cleaning,
// closing the ../ traversal hole.
func containedIn(abs, dir string) bool {
	cleanPath := filepath.Clean(abs)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// fileURL converts an absolute path to a file:// URL. Going through
// url.URL keeps Windows drive paths and reserved characters valid.
func fileURL(abs string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(abs),
	}

	return u.String()
}
