package main

import (
	"errors"
	"os"

	flowsnap "github.com/deskdocs/flowsnap"
	"github.com/deskdocs/flowsnap/internal/config"
)

// Exit codes for the flowsnap CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, asset missing
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, flowsnap.ErrBrowserLaunch) ||
		errors.Is(err, flowsnap.ErrPageCreate) ||
		errors.Is(err, flowsnap.ErrPageLoad) ||
		errors.Is(err, flowsnap.ErrRenderTimeout) ||
		errors.Is(err, flowsnap.ErrNoRenderable) ||
		errors.Is(err, flowsnap.ErrCapture) ||
		errors.Is(err, flowsnap.ErrPDFExport) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, flowsnap.ErrEngineAsset) ||
		errors.Is(err, flowsnap.ErrOutputWrite) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidLabel) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, config.ErrInvalidViewport) ||
		errors.Is(err, flowsnap.ErrInvalidViewport) ||
		errors.Is(err, flowsnap.ErrEmptyDocument) ||
		errors.Is(err, flowsnap.ErrEmptyEngine) ||
		errors.Is(err, flowsnap.ErrEmptyOutputPath) ||
		errors.Is(err, flowsnap.ErrEmptyOutputDir) ||
		errors.Is(err, ErrInvalidExtension) {
		return ExitUsage
	}

	return ExitGeneral
}
