package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deskdocs/flowsnap/internal/config"
	"github.com/deskdocs/flowsnap/internal/fileutil"
	"github.com/deskdocs/flowsnap/internal/markdown"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadInput        = errors.New("failed to read input file")
	ErrInvalidExtension = errors.New("file must have .html, .htm, .md, or .markdown extension")
)

// resolveInputPath determines the input document from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.Document != "" {
		return cfg.Input.Document, nil
	}
	return "", ErrNoInput
}

// readDocument reads the input file and returns it as HTML.
// Markdown inputs are converted; HTML inputs pass through untouched.
func readDocument(ctx context.Context, path string) (string, error) {
	if fileutil.IsURL(path) {
		return "", fmt.Errorf("%w: %s is a URL, save the document locally first", ErrReadInput, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html", ".htm", ".md", ".markdown":
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	if ext == ".html" || ext == ".htm" {
		return string(raw), nil
	}

	html, err := markdown.NewRenderer().ToHTML(ctx, string(raw))
	if err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return html, nil
}
