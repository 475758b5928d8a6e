package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags holds browser process flags.
type browserFlags struct {
	bin       string
	noSandbox bool
}

// themeFlags holds diagram theme flags.
type themeFlags struct {
	name     string
	fontSize string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common    commonFlags
	output    string   // directory for per-diagram PNGs
	labels    []string // positional labels, one per diagram
	engine    string   // path to the rendering engine bundle
	timeout   string   // per-diagram ready timeout
	workers   int      // concurrent render jobs (0 = config/default)
	viewport  string   // WIDTHxHEIGHT, e.g. 1600x1000
	assetPath string   // custom asset directory
	browser   browserFlags
	theme     themeFlags
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common    commonFlags
	output    string // output PDF path
	engine    string
	timeout   string // whole-document ready timeout
	assetPath string
	browser   browserFlags
	theme     themeFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addBrowserFlags adds browser process flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.bin, "browser-bin", "", "Chrome/Chromium binary path")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the browser sandbox (Docker/CI)")
}

// addThemeFlags adds diagram theme flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.name, "theme", "", "diagram theme: base, dark, forest, neutral")
	fs.StringVar(&f.fontSize, "font-size", "", "diagram font size, e.g. 14px")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory for PNG files")
	fs.StringArrayVarP(&f.labels, "label", "l", nil, "label for the Nth diagram (repeatable)")
	fs.StringVar(&f.engine, "engine", "", "path to mermaid.min.js")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-diagram ready timeout (e.g. 30s)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent render jobs (max 8)")
	fs.StringVar(&f.viewport, "viewport", "", "page viewport as WIDTHxHEIGHT")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template/style directory")

	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)
	addThemeFlags(fs, &f.theme)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.StringVar(&f.engine, "engine", "", "path to mermaid.min.js")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "whole-document ready timeout (e.g. 60s)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom template/style directory")

	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)
	addThemeFlags(fs, &f.theme)

	fs.Usage = func() { printExportUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
