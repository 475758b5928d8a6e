package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	flowsnap "github.com/deskdocs/flowsnap"
	"github.com/deskdocs/flowsnap/internal/config"
)

// diagramRenderer is the subset of the service used by the render command.
type diagramRenderer interface {
	RenderDiagrams(ctx context.Context, input flowsnap.RenderInput) ([]flowsnap.RenderResult, error)
	Close() error
}

// documentExporter is the subset of the service used by the export command.
type documentExporter interface {
	ExportPDF(ctx context.Context, input flowsnap.ExportInput) (flowsnap.ExportResult, error)
	Close() error
}

// Compile-time interface implementation checks.
var (
	_ diagramRenderer  = (*flowsnap.Service)(nil)
	_ documentExporter = (*flowsnap.Service)(nil)
)

// serviceOptions translates a validated config into service options.
// Callers must run cfg.Validate first; options panic on out-of-range values.
func serviceOptions(cfg *config.Config, env *Environment) ([]flowsnap.Option, error) {
	var opts []flowsnap.Option

	if cfg.Render.Timeout != "" {
		d, err := time.ParseDuration(cfg.Render.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: render.timeout: %v", config.ErrInvalidTimeout, err)
		}
		opts = append(opts, flowsnap.WithRenderTimeout(d))
	}
	if cfg.Export.Timeout != "" {
		d, err := time.ParseDuration(cfg.Export.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%w: export.timeout: %v", config.ErrInvalidTimeout, err)
		}
		opts = append(opts, flowsnap.WithExportTimeout(d))
	}
	if cfg.Render.Workers > 0 {
		opts = append(opts, flowsnap.WithWorkers(cfg.Render.Workers))
	}
	if vp := cfg.Render.Viewport; vp.Width > 0 && vp.Height > 0 {
		opts = append(opts, flowsnap.WithViewport(flowsnap.Viewport{Width: vp.Width, Height: vp.Height}))
	}
	if bin := resolveBrowserBin(cfg, env); bin != "" {
		opts = append(opts, flowsnap.WithBrowserBin(bin))
	}
	if resolveNoSandbox(cfg, env) {
		opts = append(opts, flowsnap.WithNoSandbox(true))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, flowsnap.WithAssetDir(cfg.Assets.BasePath))
	}
	if cfg.Theme.Name != "" || cfg.Theme.FontSize != "" {
		theme := flowsnap.DefaultThemeOptions()
		if cfg.Theme.Name != "" {
			theme.Theme = cfg.Theme.Name
		}
		if cfg.Theme.FontSize != "" {
			theme.ThemeVariables.FontSize = cfg.Theme.FontSize
		}
		opts = append(opts, flowsnap.WithThemeOptions(theme))
	}

	return opts, nil
}

// resolveBrowserBin returns the browser binary path from config or the
// ROD_BROWSER_BIN convention. Empty means rod's own lookup.
func resolveBrowserBin(cfg *config.Config, env *Environment) string {
	if cfg.Browser.Bin != "" {
		return cfg.Browser.Bin
	}
	return env.Getenv("ROD_BROWSER_BIN")
}

// resolveNoSandbox reports whether the browser sandbox should be disabled.
// Honors the rod conventions ROD_NO_SANDBOX=1 and CI=true alongside config.
func resolveNoSandbox(cfg *config.Config, env *Environment) bool {
	if cfg.Browser.NoSandbox {
		return true
	}
	return env.Getenv("ROD_NO_SANDBOX") == "1" || env.Getenv("CI") == "true"
}

// parseViewport parses a WIDTHxHEIGHT string such as "1600x1000".
func parseViewport(s string) (width, height int, err error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q (want WIDTHxHEIGHT)", config.ErrInvalidViewport, s)
	}
	width, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q (want WIDTHxHEIGHT)", config.ErrInvalidViewport, s)
	}
	height, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q (want WIDTHxHEIGHT)", config.ErrInvalidViewport, s)
	}
	return width, height, nil
}
