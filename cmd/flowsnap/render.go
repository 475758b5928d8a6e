package main

import (
	"context"
	"fmt"
	"time"

	flowsnap "github.com/deskdocs/flowsnap"
	"github.com/deskdocs/flowsnap/internal/config"
)

// renderServiceFactory builds the rendering service once flags and config
// have validated. Deferring construction keeps browser launch out of the
// flag-error path and gives tests a seam.
type renderServiceFactory func(opts ...flowsnap.Option) (diagramRenderer, error)

// runRender renders each embedded diagram in the input document to PNG.
func runRender(ctx context.Context, positionalArgs []string, flags *renderFlags, newService renderServiceFactory, env *Environment) error {
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if err := mergeRenderFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	doc, err := readDocument(ctx, inputPath)
	if err != nil {
		return err
	}

	diagrams, unterminated := flowsnap.ExtractDiagrams(doc, cfg.Render.Labels)
	if unterminated > 0 && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "warning: %d unterminated diagram block(s) ignored\n", unterminated)
	}
	if len(diagrams) == 0 {
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "no diagrams found in %s\n", inputPath)
		}
		return nil
	}

	engineJS, err := flowsnap.LoadEngine(cfg.Engine.Path)
	if err != nil {
		return err
	}

	opts, err := serviceOptions(cfg, env)
	if err != nil {
		return err
	}

	svc, err := newService(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil && !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "warning: closing browser: %v\n", cerr)
		}
	}()

	outputDir := cfg.Output.Dir
	if outputDir == "" {
		outputDir = "."
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "rendering %d diagram(s) from %s\n", len(diagrams), inputPath)
	}

	results, err := svc.RenderDiagrams(ctx, flowsnap.RenderInput{
		Diagrams:  diagrams,
		EngineJS:  engineJS,
		OutputDir: outputDir,
	})
	if err != nil {
		return err
	}

	failed, firstErr := printRenderResults(results, len(diagrams), flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		// Wrapping the first failure keeps its class visible to exitCodeFor.
		return fmt.Errorf("%d of %d diagram(s) failed: %w", failed, len(diagrams), firstErr)
	}

	return nil
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) error {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if len(flags.labels) > 0 {
		cfg.Render.Labels = flags.labels
	}
	if flags.engine != "" {
		cfg.Engine.Path = flags.engine
	}
	if flags.timeout != "" {
		cfg.Render.Timeout = flags.timeout
	}
	if flags.workers > 0 {
		cfg.Render.Workers = flags.workers
	}
	if flags.viewport != "" {
		w, h, err := parseViewport(flags.viewport)
		if err != nil {
			return err
		}
		cfg.Render.Viewport = config.ViewportConfig{Width: w, Height: h}
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if flags.browser.bin != "" {
		cfg.Browser.Bin = flags.browser.bin
	}
	if flags.browser.noSandbox {
		cfg.Browser.NoSandbox = true
	}
	if flags.theme.name != "" {
		cfg.Theme.Name = flags.theme.name
	}
	if flags.theme.fontSize != "" {
		cfg.Theme.FontSize = flags.theme.fontSize
	}
	return nil
}

// printRenderResults prints per-diagram outcomes in document order.
// Returns the failure count and the first failure for error classification.
func printRenderResults(results []flowsnap.RenderResult, total int, quiet, verbose bool, env *Environment) (int, error) {
	var failed int
	var firstErr error

	for _, r := range results {
		pos := fmt.Sprintf("[%d/%d]", r.Diagram.Index+1, total)

		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.Err
			}
			fmt.Fprintf(env.Stderr, "%s %s FAILED: %v\n", pos, r.Diagram.Label, r.Err)
			continue
		}

		if r.ContainerCapture && !quiet {
			fmt.Fprintf(env.Stderr, "warning: %s produced no SVG; captured its container instead\n", r.Diagram.Label)
		}

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s %s -> %s (%v)\n", pos, r.Diagram.Label, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "%s %s -> %s\n", pos, r.Diagram.Label, r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}

	return failed, firstErr
}
