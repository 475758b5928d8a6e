package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	flowsnap "github.com/deskdocs/flowsnap"
	"github.com/deskdocs/flowsnap/internal/config"
	"github.com/deskdocs/flowsnap/internal/htmldoc"
)

// exportServiceFactory builds the export service once flags and config
// have validated.
type exportServiceFactory func(opts ...flowsnap.Option) (documentExporter, error)

// runExport exports the input document to a single paginated PDF.
func runExport(ctx context.Context, positionalArgs []string, flags *exportFlags, newService exportServiceFactory, env *Environment) error {
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeExportFlags(flags, cfg)
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

	engineJS, err := flowsnap.LoadEngine(cfg.Engine.Path)
	if err != nil {
		return err
	}

	// Inline the engine so the exported page renders without network access.
	doc, replaced := flowsnap.BundleOffline(doc, engineJS)
	if !replaced && !flags.common.quiet {
		fmt.Fprintln(env.Stderr, "note: no engine script tag found; diagrams may need network access to render")
	}

	// Image and link targets must survive the move into a temp directory.
	baseDir, err := filepath.Abs(filepath.Dir(inputPath))
	if err != nil {
		return fmt.Errorf("resolving input directory: %w", err)
	}
	doc, err = flowsnap.RewriteRelativePaths(doc, baseDir)
	if err != nil {
		return fmt.Errorf("rewriting relative paths: %w", err)
	}

	outputPath := cfg.Output.PDF
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".pdf"
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

	if flags.common.verbose {
		if title := htmldoc.Title(doc); title != "" {
			fmt.Fprintf(env.Stderr, "exporting %q\n", title)
		}
	}

	result, err := svc.ExportPDF(ctx, flowsnap.ExportInput{
		Document:   doc,
		OutputPath: outputPath,
	})
	if err != nil {
		return err
	}

	if flags.common.quiet {
		return nil
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stdout, "%s -> %s (%d diagram(s), %v)\n",
			inputPath, result.OutputPath, result.Diagrams, result.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", result.OutputPath)
	}

	return nil
}

// mergeExportFlags merges CLI flags into config. CLI values override config values.
func mergeExportFlags(flags *exportFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.PDF = flags.output
	}
	if flags.engine != "" {
		cfg.Engine.Path = flags.engine
	}
	if flags.timeout != "" {
		cfg.Export.Timeout = flags.timeout
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
}
