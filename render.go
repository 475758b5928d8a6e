package flowsnap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/deskdocs/flowsnap/internal/fileutil"
)

// outputFilePermissions is used for every generated PNG and PDF.
const outputFilePermissions = 0o644

// RenderDiagrams renders each diagram to a PNG under input.OutputDir,
// creating the directory if needed. Diagrams fail independently: a bad
// block records its error in the result and the rest keep going. The
// returned slice is in diagram order regardless of worker count, one
// entry per input diagram.
//
// The error return covers batch-level failures only, such as missing
// input or an unusable output directory.
func (s *Service) RenderDiagrams(ctx context.Context, input RenderInput) ([]RenderResult, error) {
	if strings.TrimSpace(input.EngineJS) == "" {
		return nil, ErrEmptyEngine
	}

	if input.OutputDir == "" {
		return nil, ErrEmptyOutputDir
	}

	if len(input.Diagrams) == 0 {
		return []RenderResult{}, nil
	}

	if err := fileutil.EnsureDir(input.OutputDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	return s.renderBatch(ctx, input), nil
}

// renderBatch fans diagrams out over a bounded worker set. Results are
// written into a slot per diagram index, so output order never depends
// on completion order.
func (s *Service) renderBatch(ctx context.Context, input RenderInput) []RenderResult {
	n := len(input.Diagrams)
	results := make([]RenderResult, n)

	workers := s.cfg.workers
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	for i := range input.Diagrams {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup

	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			for i := range jobs {
				results[i] = s.renderOne(ctx, input.Diagrams[i], input.EngineJS, input.OutputDir)
			}
		}()
	}

	wg.Wait()

	return results
}

// renderOne runs the full pipeline for a single diagram: build the
// standalone page, write it to a temp file, capture the rendered
// output, and save the PNG. The temp file is removed on every path.
func (s *Service) renderOne(ctx context.Context, d DiagramDefinition, engineJS, outputDir string) (res RenderResult) {
	res.Diagram = d

	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	doc, err := renderDiagramDocument(s.template, engineJS, s.initOptions, d.RawMarkup)
	if err != nil {
		res.Err = err
		return res
	}

	path, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		res.Err = err
		return res
	}
	defer cleanup()

	shot, err := s.session.CaptureFromFile(ctx, path, captureSpec{
		Viewport:     s.cfg.viewport,
		NavTimeout:   s.cfg.renderNavTimeout,
		ReadyTimeout: s.cfg.renderReadyTimeout,
		Settle:       s.cfg.renderSettle,
	})
	if err != nil {
		res.Err = err
		return res
	}

	outPath := filepath.Join(outputDir, d.FileName())
	if err := os.WriteFile(outPath, shot.PNG, outputFilePermissions); err != nil { // #nosec G306 -- rendered artifacts are meant to be shareable
		res.Err = fmt.Errorf("%w: %v", ErrOutputWrite, err)
		return res
	}

	res.OutputPath = outPath
	res.ContainerCapture = shot.UsedContainer

	return res
}
