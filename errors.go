package flowsnap

import "errors"

// Sentinel errors for library operations.
var (
	// ErrEngineAsset indicates the rendering engine JavaScript bundle could
	// not be read. Fatal for the whole run: nothing renders without it.
	ErrEngineAsset = errors.New("rendering engine asset unavailable")

	// ErrBrowserLaunch indicates the headless browser failed to launch or
	// accept a connection. Fatal for the whole run, never retried.
	ErrBrowserLaunch = errors.New("failed to launch browser")

	// ErrPageCreate indicates a browser page (tab) could not be created.
	ErrPageCreate = errors.New("failed to create browser page")

	// ErrPageLoad indicates document navigation did not reach DOMContentLoaded.
	ErrPageLoad = errors.New("failed to load page")

	// ErrRenderTimeout indicates the engine did not finish rendering within
	// the configured deadline.
	ErrRenderTimeout = errors.New("diagram rendering timed out")

	// ErrNoRenderable indicates the ready predicate passed but no capturable
	// element was found. Points at engine/page structure mismatch.
	ErrNoRenderable = errors.New("no renderable diagram element found")

	// ErrCapture indicates the element screenshot failed.
	ErrCapture = errors.New("diagram capture failed")

	// ErrPDFExport indicates PDF generation failed.
	ErrPDFExport = errors.New("PDF export failed")

	// ErrOutputWrite indicates an output artifact could not be written.
	ErrOutputWrite = errors.New("failed to write output")

	// Input validation errors.
	ErrEmptyDocument   = errors.New("document content cannot be empty")
	ErrEmptyEngine     = errors.New("engine content cannot be empty")
	ErrEmptyOutputPath = errors.New("output path cannot be empty")
	ErrEmptyOutputDir  = errors.New("output directory cannot be empty")

	// Viewport validation errors.
	ErrInvalidViewport = errors.New("invalid viewport dimensions")
)
