package main

// Notes:
// - parseRenderFlags/parseExportFlags: we test short/long forms, repeatable
//   labels, positional arguments, and unknown-flag errors.
// - We don't test pflag.Parse() internals (library responsibility).

import (
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseRenderFlags - render command flag parsing
// ---------------------------------------------------------------------------

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		wantOutput     string
		wantLabels     []string
		wantEngine     string
		wantTimeout    string
		wantWorkers    int
		wantViewport   string
		wantConfig     string
		wantQuiet      bool
		wantVerbose    bool
		wantNoSandbox  bool
		wantPositional []string
		wantErr        bool
	}{
		{
			name:           "no args",
			args:           []string{},
			wantPositional: []string{},
		},
		{
			name:           "single file",
			args:           []string{"doc.html"},
			wantPositional: []string{"doc.html"},
		},
		{
			name:           "output short",
			args:           []string{"-o", "./diagrams", "doc.html"},
			wantOutput:     "./diagrams",
			wantPositional: []string{"doc.html"},
		},
		{
			name:           "repeatable labels",
			args:           []string{"-l", "auth_flow", "--label", "data_model", "doc.html"},
			wantLabels:     []string{"auth_flow", "data_model"},
			wantPositional: []string{"doc.html"},
		},
		{
			name:           "engine and timeout",
			args:           []string{"--engine", "vendor/mermaid.min.js", "-t", "45s", "doc.md"},
			wantEngine:     "vendor/mermaid.min.js",
			wantTimeout:    "45s",
			wantPositional: []string{"doc.md"},
		},
		{
			name:           "workers and viewport",
			args:           []string{"-w", "4", "--viewport", "1920x1080", "doc.html"},
			wantWorkers:    4,
			wantViewport:   "1920x1080",
			wantPositional: []string{"doc.html"},
		},
		{
			name:           "config quiet verbose no-sandbox",
			args:           []string{"-c", "team", "-q", "-v", "--no-sandbox", "doc.html"},
			wantConfig:     "team",
			wantQuiet:      true,
			wantVerbose:    true,
			wantNoSandbox:  true,
			wantPositional: []string{"doc.html"},
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus", "doc.html"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, positional, err := parseRenderFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if flags.output != tt.wantOutput {
				t.Errorf("output = %q, want %q", flags.output, tt.wantOutput)
			}
			if len(tt.wantLabels) > 0 && !reflect.DeepEqual(flags.labels, tt.wantLabels) {
				t.Errorf("labels = %v, want %v", flags.labels, tt.wantLabels)
			}
			if flags.engine != tt.wantEngine {
				t.Errorf("engine = %q, want %q", flags.engine, tt.wantEngine)
			}
			if flags.timeout != tt.wantTimeout {
				t.Errorf("timeout = %q, want %q", flags.timeout, tt.wantTimeout)
			}
			if flags.workers != tt.wantWorkers {
				t.Errorf("workers = %d, want %d", flags.workers, tt.wantWorkers)
			}
			if flags.viewport != tt.wantViewport {
				t.Errorf("viewport = %q, want %q", flags.viewport, tt.wantViewport)
			}
			if flags.common.config != tt.wantConfig {
				t.Errorf("config = %q, want %q", flags.common.config, tt.wantConfig)
			}
			if flags.common.quiet != tt.wantQuiet {
				t.Errorf("quiet = %v, want %v", flags.common.quiet, tt.wantQuiet)
			}
			if flags.common.verbose != tt.wantVerbose {
				t.Errorf("verbose = %v, want %v", flags.common.verbose, tt.wantVerbose)
			}
			if flags.browser.noSandbox != tt.wantNoSandbox {
				t.Errorf("noSandbox = %v, want %v", flags.browser.noSandbox, tt.wantNoSandbox)
			}
			if !reflect.DeepEqual(positional, tt.wantPositional) {
				t.Errorf("positional = %v, want %v", positional, tt.wantPositional)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseExportFlags - export command flag parsing
// ---------------------------------------------------------------------------

func TestParseExportFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		wantOutput     string
		wantEngine     string
		wantTimeout    string
		wantTheme      string
		wantBrowserBin string
		wantPositional []string
		wantErr        bool
	}{
		{
			name:           "single file",
			args:           []string{"doc.md"},
			wantPositional: []string{"doc.md"},
		},
		{
			name:           "output and timeout",
			args:           []string{"-o", "out/report.pdf", "-t", "2m", "doc.md"},
			wantOutput:     "out/report.pdf",
			wantTimeout:    "2m",
			wantPositional: []string{"doc.md"},
		},
		{
			name:           "engine theme browser-bin",
			args:           []string{"--engine", "m.js", "--theme", "dark", "--browser-bin", "/usr/bin/chromium", "doc.html"},
			wantEngine:     "m.js",
			wantTheme:      "dark",
			wantBrowserBin: "/usr/bin/chromium",
			wantPositional: []string{"doc.html"},
		},
		{
			name:    "render-only flag rejected",
			args:    []string{"--workers", "4", "doc.md"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, positional, err := parseExportFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if flags.output != tt.wantOutput {
				t.Errorf("output = %q, want %q", flags.output, tt.wantOutput)
			}
			if flags.engine != tt.wantEngine {
				t.Errorf("engine = %q, want %q", flags.engine, tt.wantEngine)
			}
			if flags.timeout != tt.wantTimeout {
				t.Errorf("timeout = %q, want %q", flags.timeout, tt.wantTimeout)
			}
			if flags.theme.name != tt.wantTheme {
				t.Errorf("theme = %q, want %q", flags.theme.name, tt.wantTheme)
			}
			if flags.browser.bin != tt.wantBrowserBin {
				t.Errorf("browser bin = %q, want %q", flags.browser.bin, tt.wantBrowserBin)
			}
			if !reflect.DeepEqual(positional, tt.wantPositional) {
				t.Errorf("positional = %v, want %v", positional, tt.wantPositional)
			}
		})
	}
}
