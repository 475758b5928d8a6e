// Package htmldoc provides small read-only queries over HTML documents.
package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Title returns the document's display title: the <title> text when
// present and non-empty, otherwise the text of the first <h1>,
// otherwise the empty string.
func Title(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}

	if t := firstText(root, atom.Title); t != "" {
		return t
	}

	return firstText(root, atom.H1)
}

// firstText returns the trimmed text content of the first element
// matching a, depth-first. Elements with empty text are skipped so a
// bare <title></title> does not mask a usable heading.
func firstText(n *html.Node, a atom.Atom) string {
	if n.Type == html.ElementNode && n.DataAtom == a {
		if t := strings.TrimSpace(textContent(n)); t != "" {
			return t
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := firstText(c, a); t != "" {
			return t
		}
	}

	return ""
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}

	return b.String()
}
