package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	flowsnap "github.com/deskdocs/flowsnap"
	"github.com/deskdocs/flowsnap/internal/config"
	"github.com/deskdocs/flowsnap/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run dispatches the subcommand and returns the process exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	// GOMAXPROCS honors container CPU quotas. maxprocs.Set only fails on
	// an invalid GOMAXPROCS env value; runtime defaults apply then.
	if hasVerboseFlag(args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", a...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	switch args[0] {
	case "render":
		flags, positional, err := parseRenderFlags(args[1:])
		if err != nil {
			return flagParseExit(err)
		}
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return report(runRender(ctx, positional, flags, newDiagramRenderer, env), env)

	case "export":
		flags, positional, err := parseExportFlags(args[1:])
		if err != nil {
			return flagParseExit(err)
		}
		ctx, stop := notifyContext(context.Background())
		defer stop()
		return report(runExport(ctx, positional, flags, newDocumentExporter, env), env)

	case "doctor":
		return runDoctorCmd(args[1:], env)

	case "version":
		fmt.Fprintf(env.Stdout, "flowsnap %s\n", Version)
		return ExitSuccess

	case "help", "-h", "--help":
		runHelp(args[1:], env)
		return ExitSuccess

	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// newDiagramRenderer builds the production rendering service.
func newDiagramRenderer(opts ...flowsnap.Option) (diagramRenderer, error) {
	return flowsnap.New(opts...)
}

// newDocumentExporter builds the production export service.
func newDocumentExporter(opts ...flowsnap.Option) (documentExporter, error) {
	return flowsnap.New(opts...)
}

// flagParseExit maps a pflag parse result to an exit code.
// pflag already printed the message and usage; --help is a clean exit.
func flagParseExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	return ExitUsage
}

// report prints the error with any actionable hint and maps it to an exit code.
func report(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// hintFor returns an actionable hint for the error class, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, flowsnap.ErrBrowserLaunch):
		return hints.ForBrowserLaunch()
	case errors.Is(err, flowsnap.ErrRenderTimeout):
		return hints.ForTimeout()
	case errors.Is(err, flowsnap.ErrEngineAsset):
		return hints.ForEngineAsset()
	case errors.Is(err, flowsnap.ErrOutputWrite):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if dir, derr := os.UserConfigDir(); derr == nil {
			searched = append(searched, filepath.Join(dir, "flowsnap", "config.yaml"))
		}
		return hints.ForConfigNotFound(searched)
	}
	return ""
}

// hasVerboseFlag scans raw args so maxprocs logging can be decided
// before the subcommand parses its flags.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
