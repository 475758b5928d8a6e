package flowsnap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCustomAsset(t *testing.T, baseDir, subdir, name, content string) {
	t.Helper()

	dir := filepath.Join(baseDir, subdir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("creating asset dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("writing asset: %v", err)
	}
}

func TestNewService_InvalidAssetDir(t *testing.T) {
	t.Parallel()

	cfg := defaultServiceConfig()
	cfg.assetDir = filepath.Join(t.TempDir(), "does-not-exist")

	if _, err := newService(cfg, &mockSession{}); err == nil {
		t.Error("expected error for missing asset directory")
	}
}

func TestNewService_CustomTemplate(t *testing.T) {
	t.Parallel()

	assetDir := t.TempDir()
	writeCustomAsset(t, assetDir, "templates", "diagram.html",
		`<!-- custom --><script>{{.EngineJS}}</script><script>mermaid.initialize({{.InitOptions}});</script><pre class="mermaid">{{.Markup}}</pre>`)

	mock := &mockSession{}
	s := newTestService(t, mock, WithAssetDir(assetDir))

	_, err := s.RenderDiagrams(context.Background(), RenderInput{
		Diagrams:  []DiagramDefinition{{Index: 0, Label: "x", RawMarkup: "graph"}},
		EngineJS:  "e",
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(mock.CapturedDocs[0], "<!-- custom -->") {
		t.Error("custom template should shadow the embedded one")
	}
}

func TestNewService_CustomPrintStyle(t *testing.T) {
	t.Parallel()

	assetDir := t.TempDir()
	writeCustomAsset(t, assetDir, "styles", "print.css", "body { color: red; }")

	mock := &mockSession{}
	s := newTestService(t, mock, WithAssetDir(assetDir))

	_, err := s.ExportPDF(context.Background(), ExportInput{
		Document:   "<p>x</p>",
		OutputPath: filepath.Join(t.TempDir(), "x.pdf"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.ExportSpecs[0].PrintCSS != "body { color: red; }" {
		t.Errorf("PrintCSS = %q, want the custom stylesheet", mock.ExportSpecs[0].PrintCSS)
	}
}

func TestNewService_CustomDirFallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	// Directory exists but provides no assets: everything falls back.
	assetDir := t.TempDir()

	mock := &mockSession{}
	s := newTestService(t, mock, WithAssetDir(assetDir))

	_, err := s.ExportPDF(context.Background(), ExportInput{
		Document:   "<p>x</p>",
		OutputPath: filepath.Join(t.TempDir(), "x.pdf"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.ExportSpecs[0].PrintCSS == "" {
		t.Error("embedded print stylesheet should be used as fallback")
	}
}

func TestNewService_ThemePlumbing(t *testing.T) {
	t.Parallel()

	theme := DefaultThemeOptions()
	theme.Theme = "dark"

	mock := &mockSession{}
	s := newTestService(t, mock, WithThemeOptions(theme))

	_, err := s.RenderDiagrams(context.Background(), RenderInput{
		Diagrams:  []DiagramDefinition{{Index: 0, Label: "x", RawMarkup: "graph"}},
		EngineJS:  "e",
		OutputDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(mock.CapturedDocs[0], `"theme":"dark"`) {
		t.Error("custom theme should reach the generated document")
	}
}

func TestService_Close(t *testing.T) {
	t.Parallel()

	mock := &mockSession{}
	s := newTestService(t, mock)

	if err := s.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() unexpected error: %v", err)
	}
	if mock.Closed != 2 {
		t.Errorf("session Close calls = %d, want 2", mock.Closed)
	}
}

func TestService_CloseError(t *testing.T) {
	t.Parallel()

	mock := &mockSession{CloseErr: ErrBrowserLaunch}
	s := newTestService(t, mock)

	if err := s.Close(); err == nil {
		t.Error("session close error should propagate")
	}
}
