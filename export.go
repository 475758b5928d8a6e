package flowsnap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/deskdocs/flowsnap/internal/fileutil"
)

// ExportPDF prints a complete HTML document to a PDF at
// input.OutputPath. When the document contains diagram blocks the
// export waits until every one of them has rendered; a document with
// none skips the wait and prints immediately.
//
// The export is all-or-nothing: any failure leaves no output file
// behind.
func (s *Service) ExportPDF(ctx context.Context, input ExportInput) (ExportResult, error) {
	start := time.Now()

	if strings.TrimSpace(input.Document) == "" {
		return ExportResult{}, ErrEmptyDocument
	}

	if input.OutputPath == "" {
		return ExportResult{}, ErrEmptyOutputPath
	}

	diagrams := countDiagramBlocks(input.Document)

	path, cleanup, err := fileutil.WriteTempFile(input.Document, "html")
	if err != nil {
		return ExportResult{}, err
	}
	defer cleanup()

	pdf, err := s.session.ExportFromFile(ctx, path, exportSpec{
		NavTimeout:    s.cfg.exportNavTimeout,
		ReadyTimeout:  s.cfg.exportReadyTimeout,
		Settle:        s.cfg.exportSettle,
		PrintCSS:      s.printCSS,
		AwaitDiagrams: diagrams > 0,
	})
	if err != nil {
		return ExportResult{}, err
	}

	if err := os.WriteFile(input.OutputPath, pdf, outputFilePermissions); err != nil { // #nosec G306 -- rendered artifacts are meant to be shareable
		return ExportResult{}, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	return ExportResult{
		OutputPath: input.OutputPath,
		Diagrams:   diagrams,
		Duration:   time.Since(start),
	}, nil
}
