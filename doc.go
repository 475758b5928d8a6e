// Package flowsnap renders mermaid diagrams embedded in HTML or Markdown
// documents to PNG images and exports whole documents to paginated PDF,
// using headless Chrome.
//
// # Quick Start
//
// Extract the diagrams from a document, render each to a PNG, and close
// the service when done:
//
//	engineJS, err := flowsnap.LoadEngine(flowsnap.DefaultEnginePath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc, err := flowsnap.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	diagrams, _ := flowsnap.ExtractDiagrams(doc, []string{"overview", "ingestion"})
//	results, err := svc.RenderDiagrams(ctx, flowsnap.RenderInput{
//	    Diagrams:  diagrams,
//	    EngineJS:  engineJS,
//	    OutputDir: "out/diagrams",
//	})
//
// Each result reports the written file ("01_overview.png", ...) or the error
// for that diagram; one failed diagram never aborts the others.
//
// # Rendering Pipeline
//
// Per-diagram rendering follows these stages:
//
//  1. Diagram extraction from <pre class="mermaid"> blocks (extract.go)
//  2. Standalone page assembly with the engine inlined (diagramdoc.go)
//  3. Page load, engine completion poll, settle delay (session.go)
//  4. Element screenshot of the rendered graphic (render.go)
//
// Document export shares stage 3 with an aggregate completion poll, injects
// print CSS, and produces a single A4 PDF (export.go). BundleOffline inlines
// the CDN engine reference first so the export never depends on the network.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := flowsnap.New(
//	    flowsnap.WithRenderTimeout(time.Minute),
//	    flowsnap.WithWorkers(4),
//	    flowsnap.WithViewport(flowsnap.Viewport{Width: 1920, Height: 1200}),
//	    flowsnap.WithBrowserBin("/usr/bin/chromium"),
//	)
//
// # Browser Requirements
//
// Rendering requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// In containers and CI the Chrome sandbox usually cannot start; pass
// WithNoSandbox(true) there, and WithBrowserBin to use an existing Chrome
// install. The flowsnap CLI maps the ROD_NO_SANDBOX, ROD_BROWSER_BIN, and CI
// environment conventions onto these options.
package flowsnap
