package flowsnap

import (
	"fmt"
	"time"
)

// DiagramDefinition is one mermaid block lifted out of an HTML document.
// Index is the zero-based position of the block in document order and
// RawMarkup holds the diagram source exactly as authored, minus leading
// and trailing whitespace.
type DiagramDefinition struct {
	Index     int
	Label     string
	RawMarkup string
}

// FileName returns the output file name for the diagram, prefixed with
// its one-based position so directory listings keep document order.
func (d DiagramDefinition) FileName() string {
	return fmt.Sprintf("%02d_%s.png", d.Index+1, d.Label)
}

// RenderInput carries everything a render run needs.
type RenderInput struct {
	// Diagrams to render, usually from ExtractDiagrams.
	Diagrams []DiagramDefinition

	// EngineJS is the full mermaid library source, inlined into each
	// diagram page so rendering works without network access.
	EngineJS string

	// OutputDir receives one PNG per diagram. Created if missing.
	OutputDir string
}

// RenderResult reports the outcome for a single diagram. Err is nil on
// success; a failed diagram never writes its output file.
type RenderResult struct {
	Diagram    DiagramDefinition
	OutputPath string
	Err        error
	Duration   time.Duration

	// ContainerCapture is set when the rendered SVG could not be
	// located and the screenshot fell back to the diagram container.
	ContainerCapture bool
}

// ExportInput carries everything a PDF export needs.
type ExportInput struct {
	// Document is the complete HTML to print, with diagram markup
	// and the rendering engine already inlined.
	Document string

	// OutputPath is the destination PDF file.
	OutputPath string
}

// ExportResult reports a completed PDF export.
type ExportResult struct {
	OutputPath string

	// Diagrams is the number of diagram blocks the document contained.
	Diagrams int

	Duration time.Duration
}

// Viewport is the browser window size used for diagram rendering.
type Viewport struct {
	Width  int
	Height int
}

// Validate checks that both dimensions are positive.
func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, v.Width, v.Height)
	}

	return nil
}

// ThemeOptions mirrors the options object passed to mermaid.initialize.
// Field order matters: it fixes the JSON key order, which keeps the
// generated diagram documents stable across runs.
type ThemeOptions struct {
	StartOnLoad    bool             `json:"startOnLoad"`
	Theme          string           `json:"theme"`
	ThemeVariables ThemeVariables   `json:"themeVariables"`
	Flowchart      FlowchartOptions `json:"flowchart"`
}

// ThemeVariables holds the color and typography overrides applied on
// top of the base mermaid theme.
type ThemeVariables struct {
	PrimaryColor       string `json:"primaryColor"`
	PrimaryBorderColor string `json:"primaryBorderColor"`
	PrimaryTextColor   string `json:"primaryTextColor"`
	LineColor          string `json:"lineColor"`
	SecondaryColor     string `json:"secondaryColor"`
	TertiaryColor      string `json:"tertiaryColor"`
	FontSize           string `json:"fontSize"`
}

// FlowchartOptions tunes flowchart-specific layout.
type FlowchartOptions struct {
	HTMLLabels bool   `json:"htmlLabels"`
	Curve      string `json:"curve"`
	Padding    int    `json:"padding"`
}

// DefaultThemeOptions returns the house style: a light palette on the
// base theme with curved flowchart edges.
func DefaultThemeOptions() ThemeOptions {
	return ThemeOptions{
		StartOnLoad: true,
		Theme:       "base",
		ThemeVariables: ThemeVariables{
			PrimaryColor:       "#ebf5fb",
			PrimaryBorderColor: "#2e86de",
			PrimaryTextColor:   "#0b1d3a",
			LineColor:          "#5a6c7d",
			SecondaryColor:     "#fef9e7",
			TertiaryColor:      "#eafaf1",
			FontSize:           "14px",
		},
		Flowchart: FlowchartOptions{
			HTMLLabels: true,
			Curve:      "basis",
			Padding:    16,
		},
	}
}

// MaxWorkers caps concurrent diagram renders. Each worker drives its
// own browser page; more than this wastes memory without speedup.
const MaxWorkers = 8

// Default timeouts. Render pages are small single-diagram documents;
// export pages carry the whole document and get roomier limits.
const (
	defaultRenderNavTimeout   = 15 * time.Second
	defaultRenderReadyTimeout = 30 * time.Second
	defaultRenderSettle       = 300 * time.Millisecond

	defaultExportNavTimeout   = 30 * time.Second
	defaultExportReadyTimeout = 60 * time.Second
	defaultExportSettle       = 500 * time.Millisecond

	defaultWorkers = 1

	defaultViewportWidth  = 1600
	defaultViewportHeight = 1000
)

// serviceConfig holds the resolved settings for a Service.
type serviceConfig struct {
	renderNavTimeout   time.Duration
	renderReadyTimeout time.Duration
	renderSettle       time.Duration

	exportNavTimeout   time.Duration
	exportReadyTimeout time.Duration
	exportSettle       time.Duration

	workers    int
	browserBin string
	noSandbox  bool
	assetDir   string
	theme      ThemeOptions
	viewport   Viewport
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		renderNavTimeout:   defaultRenderNavTimeout,
		renderReadyTimeout: defaultRenderReadyTimeout,
		renderSettle:       defaultRenderSettle,
		exportNavTimeout:   defaultExportNavTimeout,
		exportReadyTimeout: defaultExportReadyTimeout,
		exportSettle:       defaultExportSettle,
		workers:            defaultWorkers,
		theme:              DefaultThemeOptions(),
		viewport:           Viewport{Width: defaultViewportWidth, Height: defaultViewportHeight},
	}
}

// Option configures a Service. Options panic on invalid values: they
// express programmer intent, not user input, so misuse should fail
// loudly at construction.
type Option func(*serviceConfig)

// WithRenderTimeout sets how long a single diagram may take to become
// ready before its render fails. Panics if d is not positive.
func WithRenderTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("flowsnap: render timeout must be positive, got %v", d))
	}

	return func(c *serviceConfig) {
		c.renderReadyTimeout = d
	}
}

// WithExportTimeout sets how long a document export may wait for all
// diagrams to become ready. Panics if d is not positive.
func WithExportTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("flowsnap: export timeout must be positive, got %v", d))
	}

	return func(c *serviceConfig) {
		c.exportReadyTimeout = d
	}
}

// WithWorkers sets how many diagrams render concurrently. Panics if n
// is outside [1, MaxWorkers].
func WithWorkers(n int) Option {
	if n < 1 || n > MaxWorkers {
		panic(fmt.Sprintf("flowsnap: workers must be in [1, %d], got %d", MaxWorkers, n))
	}

	return func(c *serviceConfig) {
		c.workers = n
	}
}

// WithBrowserBin points the session at an existing Chrome or Chromium
// binary instead of letting the launcher download one.
func WithBrowserBin(path string) Option {
	return func(c *serviceConfig) {
		c.browserBin = path
	}
}

// WithNoSandbox disables the browser sandbox. Required in most
// container environments where the kernel forbids unprivileged
// namespaces.
func WithNoSandbox(enabled bool) Option {
	return func(c *serviceConfig) {
		c.noSandbox = enabled
	}
}

// WithThemeOptions replaces the default diagram theme.
func WithThemeOptions(theme ThemeOptions) Option {
	return func(c *serviceConfig) {
		c.theme = theme
	}
}

// WithViewport sets the browser window size for diagram rendering.
// Panics if either dimension is not positive.
func WithViewport(v Viewport) Option {
	if err := v.Validate(); err != nil {
		panic(fmt.Sprintf("flowsnap: %v", err))
	}

	return func(c *serviceConfig) {
		c.viewport = v
	}
}

// WithAssetDir points template and style lookups at a directory of
// custom assets, falling back to the embedded set for anything the
// directory does not provide.
func WithAssetDir(dir string) Option {
	return func(c *serviceConfig) {
		c.assetDir = dir
	}
}
