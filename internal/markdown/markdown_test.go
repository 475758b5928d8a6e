package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRenderer_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "basic heading",
			input: "# Hello World",
			wantContains: []string{
				"<!DOCTYPE html>",
				"<h1",
				"Hello World",
				"</h1>",
			},
		},
		{
			name:  "headings get IDs",
			input: "# First\n## Second",
			wantContains: []string{
				"<h1",
				"<h2",
				`id="`,
			},
		},
		{
			name:  "GFM table",
			input: "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{
				"<table>",
				"<thead>",
				"<tbody>",
			},
		},
		{
			name:  "GFM task list",
			input: "- [x] Done\n- [ ] Todo",
			wantContains: []string{
				"<input",
				"checked",
				"type=\"checkbox\"",
			},
		},
		{
			name:  "footnote",
			input: "Text[^1]\n\n[^1]: Footnote content",
			wantContains: []string{
				"<sup",
				"footnote",
			},
		},
		{
			name:  "code block with syntax highlighting classes",
			input: "```go\nfunc main() {}\n```",
			wantContains: []string{
				"<pre",
				"func",
				"class=",
			},
		},
		{
			name:  "mermaid block becomes client container",
			input: "```mermaid\nflowchart TD\n  A --- B\n```",
			wantContains: []string{
				`<pre class="mermaid">`,
				"flowchart TD",
				`src="` + MermaidJSURL + `"`,
			},
			wantNot: []string{
				"<svg",
			},
		},
		{
			name:  "hard line breaks",
			input: "Line one\nLine two",
			wantContains: []string{
				"<br",
			},
		},
		{
			// Raw HTML stays escaped: WithUnsafe is not enabled.
			name:  "raw HTML is sanitized",
			input: "<script>alert('xss')</script>",
			wantContains: []string{
				"<!-- raw HTML omitted -->",
			},
			wantNot: []string{
				"<script>alert",
			},
		},
		{
			name:  "unicode content",
			input: "# 日本語\n\nBonjour le monde",
			wantContains: []string{
				"日本語",
				"Bonjour le monde",
			},
		},
		{
			// The shell carries no <title>; the exporter derives one
			// from headings instead.
			name:  "document shell",
			input: "# Test",
			wantContains: []string{
				"<!DOCTYPE html>",
				"<html>",
				"<meta charset=\"utf-8\">",
				"<body>",
				"</body>",
				"</html>",
			},
			wantNot: []string{
				"<title>",
			},
		},
	}

	renderer := NewRenderer()
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := renderer.ToHTML(ctx, tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(result, want) {
					t.Errorf("ToHTML() result should contain %q\nGot:\n%s", want, result)
				}
			}

			for _, notWant := range tt.wantNot {
				if strings.Contains(result, notWant) {
					t.Errorf("ToHTML() result should NOT contain %q\nGot:\n%s", notWant, result)
				}
			}
		})
	}
}

func TestRenderer_ToHTML_SingleEngineScript(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()
	input := "```mermaid\nflowchart TD\n  A --- B\n```\n\nText between.\n\n```mermaid\nflowchart LR\n  C --- D\n```"

	result, err := renderer.ToHTML(context.Background(), input)
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	if got := strings.Count(result, `<pre class="mermaid">`); got != 2 {
		t.Errorf("expected 2 mermaid containers, got %d", got)
	}

	// One engine script regardless of diagram count.
	if got := strings.Count(result, MermaidJSURL); got != 1 {
		t.Errorf("expected exactly 1 engine script URL, got %d", got)
	}
}

func TestRenderer_ToHTML_ContextCancellation(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	t.Run("cancelled context returns error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := renderer.ToHTML(ctx, "# Test")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("deadline exceeded returns error", func(t *testing.T) {
		t.Parallel()

		// Already-expired deadline avoids flaky timing.
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := renderer.ToHTML(ctx, "# Test")
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
	})

	t.Run("valid context succeeds", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := renderer.ToHTML(ctx, "# Test")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(result, "Test") {
			t.Error("result should contain converted content")
		}
	})
}
