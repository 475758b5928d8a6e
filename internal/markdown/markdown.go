// Package markdown converts Markdown documents to HTML with mermaid
// blocks preserved as client-rendered containers.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/mermaid"
)

// ErrConvert indicates Markdown conversion failed.
var ErrConvert = errors.New("markdown conversion failed")

// MermaidJSURL is the pinned engine URL written into converted
// documents. Downstream tooling swaps this script tag for an inline
// engine copy, so the URL must stay on the jsdelivr mermaid path.
const MermaidJSURL = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"

// documentShell wraps goldmark's fragment output in a complete HTML5
// document. Deliberately no <title>: the exporter derives one from the
// first heading, which beats a hardcoded placeholder.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
</head>
<body>
%s
</body>
</html>`

// Renderer converts Markdown to standalone HTML documents.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a Renderer with GFM extensions, syntax
// highlighting, and client-side mermaid rendering.
//
// Mermaid render mode is forced to client so every diagram survives as
// a <pre class="mermaid"> container: auto mode would render
// server-side whenever mmdc is installed and leave nothing to extract.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
			&mermaid.Extender{
				RenderMode: mermaid.RenderModeClient,
				MermaidURL: MermaidJSURL,
			},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// Note: WithUnsafe() intentionally NOT used. Raw HTML in
			// source documents stays escaped.
		),
	)

	return &Renderer{md: md}
}

// ToHTML converts Markdown content to a standalone HTML5 document.
// Supports context cancellation via goroutine + select since goldmark
// doesn't natively take a context.
func (r *Renderer) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConvert, err)}
			return
		}
		done <- result{html: fmt.Sprintf(documentShell, buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}
