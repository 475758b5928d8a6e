package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: flowsnap <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render embedded diagrams to PNG files")
	fmt.Fprintln(w, "  export     Export a document to a paginated PDF")
	fmt.Fprintln(w, "  doctor     Check browser, engine, and environment readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'flowsnap help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: flowsnap render [flags] <document>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each mermaid diagram in an HTML or Markdown document")
	fmt.Fprintln(w, "to its own PNG file, named NN_label.png in document order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  document    Input file, .html or .md (optional if config has input.document)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory for PNG files")
	fmt.Fprintln(w, "  -l, --label <s>           Label for the Nth diagram (repeatable)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <path>       Path to mermaid.min.js (default: node_modules)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-diagram ready timeout (e.g. 30s)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent render jobs (max 8)")
	fmt.Fprintln(w, "      --viewport <WxH>      Page viewport (e.g. 1600x1000)")
	fmt.Fprintln(w, "      --theme <s>           Diagram theme: base, dark, forest, neutral")
	fmt.Fprintln(w, "      --font-size <s>       Diagram font size (e.g. 14px)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom template/style directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary path")
	fmt.Fprintln(w, "      --no-sandbox          Disable the browser sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: flowsnap export [flags] <document>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export an HTML or Markdown document to a single paginated PDF,")
	fmt.Fprintln(w, "with all embedded diagrams rendered in place.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  document    Input file, .html or .md (optional if config has input.document)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF path (default: <input>.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <path>       Path to mermaid.min.js (default: node_modules)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Whole-document ready timeout (e.g. 60s)")
	fmt.Fprintln(w, "      --theme <s>           Diagram theme: base, dark, forest, neutral")
	fmt.Fprintln(w, "      --font-size <s>       Diagram font size (e.g. 14px)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom template/style directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary path")
	fmt.Fprintln(w, "      --no-sandbox          Disable the browser sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: flowsnap doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the browser, rendering engine, and environment are")
	fmt.Fprintln(w, "ready for rendering. Exits non-zero when a required piece is missing.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: flowsnap version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: flowsnap help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
