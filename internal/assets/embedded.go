package assets

import (
	"embed"
	"fmt"
)

// Both asset kinds ship in one embedded filesystem; the subdirectory
// picks the kind.
//
//go:embed styles templates
var builtin embed.FS

// EmbeddedLoader serves the compiled-in print stylesheet and diagram
// page template. It has no state; every binary carries the same set.
type EmbeddedLoader struct{}

var _ Loader = (*EmbeddedLoader)(nil)

// NewEmbeddedLoader returns a loader over the compiled-in assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the embedded stylesheet for name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.read("styles", name, ".css", ErrStyleNotFound)
}

// LoadTemplate returns the embedded page template for name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.read("templates", name, ".html", ErrTemplateNotFound)
}

func (e *EmbeddedLoader) read(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := builtin.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}

	return string(content), nil
}
