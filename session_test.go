package flowsnap

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
)

// mockSession implements browserSession without a browser. It reads
// every file it is handed so tests can assert on generated documents
// and on temp file lifetime.
type mockSession struct {
	StartErr   error
	CloseErr   error
	CaptureErr error
	ExportErr  error

	PNG           []byte
	PDF           []byte
	UsedContainer bool

	// FailWhenContains makes only captures of documents containing the
	// substring return CaptureErr.
	FailWhenContains string

	mu            sync.Mutex
	Started       bool
	Closed        int
	CapturedPaths []string
	CapturedDocs  []string
	CaptureSpecs  []captureSpec
	ExportedPaths []string
	ExportedDocs  []string
	ExportSpecs   []exportSpec
}

var _ browserSession = (*mockSession)(nil)

func (m *mockSession) Start() error {
	m.Started = true
	return m.StartErr
}

func (m *mockSession) Close() error {
	m.Closed++
	return m.CloseErr
}

func (m *mockSession) CaptureFromFile(ctx context.Context, path string, spec captureSpec) (capture, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- test reads back its own temp file
	if err != nil {
		return capture{}, err
	}

	m.mu.Lock()
	m.CapturedPaths = append(m.CapturedPaths, path)
	m.CapturedDocs = append(m.CapturedDocs, string(data))
	m.CaptureSpecs = append(m.CaptureSpecs, spec)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return capture{}, err
	}

	if m.CaptureErr != nil {
		if m.FailWhenContains == "" || strings.Contains(string(data), m.FailWhenContains) {
			return capture{}, m.CaptureErr
		}
	}

	png := m.PNG
	if png == nil {
		png = []byte("PNG-BYTES")
	}

	return capture{PNG: png, UsedContainer: m.UsedContainer}, nil
}

func (m *mockSession) ExportFromFile(ctx context.Context, path string, spec exportSpec) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- test reads back its own temp file
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.ExportedPaths = append(m.ExportedPaths, path)
	m.ExportedDocs = append(m.ExportedDocs, string(data))
	m.ExportSpecs = append(m.ExportSpecs, spec)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.ExportErr != nil {
		return nil, m.ExportErr
	}

	pdf := m.PDF
	if pdf == nil {
		pdf = []byte("%PDF-1.7 fake")
	}

	return pdf, nil
}

// newTestService wires a Service around an injected session, skipping
// the browser launch that New performs.
func newTestService(t *testing.T, session browserSession, opts ...Option) *Service {
	t.Helper()

	cfg := defaultServiceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	s, err := newService(cfg, session)
	if err != nil {
		t.Fatalf("newService() unexpected error: %v", err)
	}

	return s
}
