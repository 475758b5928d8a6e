package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	flowsnap "github.com/deskdocs/flowsnap"
)

// fakeService implements diagramRenderer and documentExporter in memory,
// standing in for a real browser session behind the factory seam.
type fakeService struct {
	mu sync.Mutex

	RenderErr        error // returned by RenderDiagrams itself
	PerDiagramErr    error // set on every RenderResult
	ContainerCapture bool  // mark results as container fallbacks
	ExportErr        error
	CloseErr         error

	Closed   int
	RenderIn []flowsnap.RenderInput
	ExportIn []flowsnap.ExportInput
}

func (f *fakeService) RenderDiagrams(_ context.Context, in flowsnap.RenderInput) ([]flowsnap.RenderResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RenderIn = append(f.RenderIn, in)

	if f.RenderErr != nil {
		return nil, f.RenderErr
	}

	results := make([]flowsnap.RenderResult, len(in.Diagrams))
	for i, d := range in.Diagrams {
		results[i] = flowsnap.RenderResult{
			Diagram:          d,
			Err:              f.PerDiagramErr,
			Duration:         10 * time.Millisecond,
			ContainerCapture: f.ContainerCapture,
		}
		if f.PerDiagramErr == nil {
			results[i].OutputPath = filepath.Join(in.OutputDir, d.FileName())
		}
	}
	return results, nil
}

func (f *fakeService) ExportPDF(_ context.Context, in flowsnap.ExportInput) (flowsnap.ExportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExportIn = append(f.ExportIn, in)

	if f.ExportErr != nil {
		return flowsnap.ExportResult{}, f.ExportErr
	}
	return flowsnap.ExportResult{
		OutputPath: in.OutputPath,
		Diagrams:   strings.Count(in.Document, `<pre class="mermaid">`),
		Duration:   25 * time.Millisecond,
	}, nil
}

func (f *fakeService) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed++
	return f.CloseErr
}

// renderFactory wires the fake into runRender and records invocation.
func renderFactory(svc *fakeService, called *bool) renderServiceFactory {
	return func(_ ...flowsnap.Option) (diagramRenderer, error) {
		if called != nil {
			*called = true
		}
		return svc, nil
	}
}

// exportFactory wires the fake into runExport and records invocation.
func exportFactory(svc *fakeService, called *bool) exportServiceFactory {
	return func(_ ...flowsnap.Option) (documentExporter, error) {
		if called != nil {
			*called = true
		}
		return svc, nil
	}
}

// testEnv returns an Environment with buffered output and a map-backed getenv.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: fakeGetenv(vars),
	}, &stdout, &stderr
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const testEngineJS = `window.mermaid = { initialize: function() {}, run: function() {} };`

// diagramDoc builds an HTML document with the given mermaid blocks.
func diagramDoc(markups ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for _, m := range markups {
		b.WriteString(`<pre class="mermaid">` + "\n" + m + "\n</pre>\n")
	}
	b.WriteString("</body></html>\n")
	return b.String()
}
