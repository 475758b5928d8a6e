package flowsnap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/deskdocs/flowsnap/internal/process"
)

// Readiness predicates polled inside the page. Mermaid flips
// data-processed on a container when it finishes with it, but the SVG
// can land a beat earlier, so either signal counts as ready.
const (
	diagramReadyJS = `() => {
	const el = document.querySelector('.mermaid');
	return !!el && (el.getAttribute('data-processed') === 'true' || el.querySelector('svg') !== null);
}`

	allDiagramsReadyJS = `() => {
	const els = document.querySelectorAll('.mermaid');
	return els.length > 0 && Array.from(els).every(el =>
		el.getAttribute('data-processed') === 'true' || el.querySelector('svg') !== null);
}`

	diagramProgressJS = `() => {
	const els = Array.from(document.querySelectorAll('.mermaid'));
	const pending = els.filter(el =>
		el.getAttribute('data-processed') !== 'true' && el.querySelector('svg') === null).length;
	return { total: els.length, pending: pending };
}`
)

// PDF page geometry: A4 with asymmetric margins, converted to the
// inches Chrome's print API expects.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69

	pageMarginTopBottomMM = 16.0
	pageMarginLeftRightMM = 12.0
	mmPerInch             = 25.4
)

// diagnosticEvalTimeout bounds the progress query made after a ready
// wait expires. The page may be wedged; the diagnostic must not hang
// the error path.
const diagnosticEvalTimeout = 2 * time.Second

// captureSpec carries the per-job parameters for a diagram screenshot.
type captureSpec struct {
	Viewport     Viewport
	NavTimeout   time.Duration
	ReadyTimeout time.Duration
	Settle       time.Duration
}

// exportSpec carries the per-job parameters for a PDF export.
type exportSpec struct {
	NavTimeout   time.Duration
	ReadyTimeout time.Duration
	Settle       time.Duration
	PrintCSS     string

	// AwaitDiagrams skips the readiness wait when false. A document
	// with no diagram containers would otherwise wait out the full
	// timeout for a condition that can never hold.
	AwaitDiagrams bool
}

// capture is the outcome of a diagram screenshot. UsedContainer marks
// the fallback path where no SVG was found and the container element
// was photographed instead.
type capture struct {
	PNG           []byte
	UsedContainer bool
}

// diagramCapturer screenshots a rendered diagram from a local HTML file.
type diagramCapturer interface {
	CaptureFromFile(ctx context.Context, path string, spec captureSpec) (capture, error)
}

// pdfExporter prints a local HTML file to PDF.
type pdfExporter interface {
	ExportFromFile(ctx context.Context, path string, spec exportSpec) ([]byte, error)
}

// browserSession is the lifecycle seam between the service and the
// browser. Tests swap in a fake; production uses rodSession.
type browserSession interface {
	Start() error
	Close() error
	diagramCapturer
	pdfExporter
}

// rodSession drives one headless Chrome instance for the lifetime of a
// run. Rod downloads a browser on first use when none is installed.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser

	bin       string
	noSandbox bool
}

var _ browserSession = (*rodSession)(nil)

func newRodSession(bin string, noSandbox bool) *rodSession {
	return &rodSession{bin: bin, noSandbox: noSandbox}
}

// Start launches the browser and connects to it. Called once per
// session; a failure here is fatal for the whole run.
func (s *rodSession) Start() error {
	l := launcher.New()

	if s.bin != "" {
		l = l.Bin(s.bin)
	}

	if s.noSandbox {
		l = l.NoSandbox(true).Set("disable-setuid-sandbox")
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		return fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	s.launcher = l
	s.browser = browser

	return nil
}

// Close shuts the browser down and then kills its process group. The
// group kill catches GPU and renderer children that survive a wedged
// browser process.
func (s *rodSession) Close() error {
	if s.browser == nil {
		return nil
	}

	pid := s.launcher.PID()
	err := s.browser.Close()
	process.KillProcessGroup(pid)

	s.browser = nil
	s.launcher = nil

	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}

	return nil
}

// CaptureFromFile opens the diagram document at path, waits for the
// diagram to render, and screenshots it.
func (s *rodSession) CaptureFromFile(ctx context.Context, path string, spec captureSpec) (capture, error) {
	if err := ctx.Err(); err != nil {
		return capture{}, err
	}

	page, err := s.newPage(ctx)
	if err != nil {
		return capture{}, err
	}
	defer page.Close()

	viewport := &proto.EmulationSetDeviceMetricsOverride{
		Width:             spec.Viewport.Width,
		Height:            spec.Viewport.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}
	if err := page.SetViewport(viewport); err != nil {
		return capture{}, fmt.Errorf("%w: set viewport: %v", ErrPageCreate, err)
	}

	if err := navigate(ctx, page, path, spec.NavTimeout); err != nil {
		return capture{}, err
	}

	if err := awaitReady(ctx, page, spec.ReadyTimeout); err != nil {
		return capture{}, err
	}

	if err := settle(ctx, spec.Settle); err != nil {
		return capture{}, err
	}

	return captureDiagram(page)
}

// ExportFromFile opens the document at path, optionally waits for
// every diagram to render, injects print styles, and prints to PDF.
func (s *rodSession) ExportFromFile(ctx context.Context, path string, spec exportSpec) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := s.newPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := navigate(ctx, page, path, spec.NavTimeout); err != nil {
		return nil, err
	}

	if spec.AwaitDiagrams {
		if err := awaitAllReady(ctx, page, spec.ReadyTimeout); err != nil {
			return nil, err
		}
	}

	// Print styles go in after the ready wait: hiding screen-only
	// elements earlier would reflow containers mid-render.
	if spec.PrintCSS != "" {
		if err := page.AddStyleTag("", spec.PrintCSS); err != nil {
			return nil, fmt.Errorf("%w: inject print styles: %v", ErrPDFExport, err)
		}
	}

	if err := settle(ctx, spec.Settle); err != nil {
		return nil, err
	}

	return printPDF(page)
}

func (s *rodSession) newPage(ctx context.Context) (*rod.Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	return page.Context(ctx), nil
}

// navigate loads a local file and waits for DOMContentLoaded only. The
// engine is inlined, so there are no subresources worth waiting for
// and the full load event would add nothing.
func navigate(ctx context.Context, page *rod.Page, path string, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pg := page.Context(navCtx)
	wait := pg.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)

	if err := pg.Navigate("file://" + path); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	wait()

	if navCtx.Err() != nil {
		if err := ctx.Err(); err != nil {
			return err
		}

		return fmt.Errorf("%w: no DOMContentLoaded after %s", ErrPageLoad, timeout)
	}

	return nil
}

// awaitReady polls the single-diagram predicate until it reports true
// or the timeout expires.
func awaitReady(ctx context.Context, page *rod.Page, timeout time.Duration) error {
	readyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := page.Context(readyCtx).Wait(rod.Eval(diagramReadyJS))
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if readyCtx.Err() != nil {
		return fmt.Errorf("%w: diagram not ready after %s", ErrRenderTimeout, timeout)
	}

	return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
}

// awaitAllReady polls the aggregate predicate used for exports. On
// timeout it asks the page how far rendering got, so the error says
// which fraction of the document stalled.
func awaitAllReady(ctx context.Context, page *rod.Page, timeout time.Duration) error {
	readyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := page.Context(readyCtx).Wait(rod.Eval(allDiagramsReadyJS))
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if readyCtx.Err() != nil {
		total, pending := diagramProgress(page)
		if total >= 0 {
			return fmt.Errorf("%w: %d of %d diagrams still rendering after %s",
				ErrRenderTimeout, pending, total, timeout)
		}

		return fmt.Errorf("%w: diagrams not ready after %s", ErrRenderTimeout, timeout)
	}

	return fmt.Errorf("%w: %v", ErrRenderTimeout, err)
}

// diagramProgress reports how many containers still lack output.
// Returns -1, -1 when the page can no longer be evaluated.
func diagramProgress(page *rod.Page) (total, pending int) {
	obj, err := page.Timeout(diagnosticEvalTimeout).Eval(diagramProgressJS)
	if err != nil {
		return -1, -1
	}

	return obj.Value.Get("total").Int(), obj.Value.Get("pending").Int()
}

// settle waits out font layout and final SVG measurement after the
// ready signal fires. Readiness marks output present, not stable.
func settle(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// captureDiagram screenshots the rendered SVG, falling back to the
// container element when the ready signal fired without producing one.
// The fallback keeps a visible artifact, typically mermaid's own error
// rendering, instead of dropping the diagram silently.
func captureDiagram(page *rod.Page) (capture, error) {
	has, el, err := page.Has(".mermaid svg")
	if err == nil && has {
		png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
		if err != nil {
			return capture{}, fmt.Errorf("%w: %v", ErrCapture, err)
		}

		return capture{PNG: png}, nil
	}

	has, el, err = page.Has(".mermaid")
	if err != nil || !has {
		return capture{}, fmt.Errorf("%w: no diagram container on page", ErrNoRenderable)
	}

	png, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return capture{}, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	return capture{PNG: png, UsedContainer: true}, nil
}

// printPDF prints the current page to A4 with backgrounds preserved.
func printPDF(page *rod.Page) ([]byte, error) {
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      floatPtr(a4WidthInches),
		PaperHeight:     floatPtr(a4HeightInches),
		MarginTop:       floatPtr(pageMarginTopBottomMM / mmPerInch),
		MarginBottom:    floatPtr(pageMarginTopBottomMM / mmPerInch),
		MarginLeft:      floatPtr(pageMarginLeftRightMM / mmPerInch),
		MarginRight:     floatPtr(pageMarginLeftRightMM / mmPerInch),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFExport, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFExport, err)
	}

	return data, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
