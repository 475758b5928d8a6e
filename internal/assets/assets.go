// Package assets provides the built-in print stylesheet and the
// standalone diagram page template, with optional overrides from a
// directory on disk.
package assets

import (
	"fmt"
	"strings"
)

// Names of the built-in assets the render service loads. Styles resolve
// to styles/<name>.css, templates to templates/<name>.html.
const (
	// DefaultStyleName is the print stylesheet injected before PDF export.
	DefaultStyleName = "print"

	// DefaultTemplateName is the page template each diagram renders in.
	DefaultTemplateName = "diagram"
)

// Loader resolves bare asset names (no extension, no directory) to
// their contents.
type Loader interface {
	// LoadStyle returns the CSS for name. ErrStyleNotFound when absent,
	// ErrInvalidAssetName when the name is not a bare name.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns the HTML template for name. ErrTemplateNotFound
	// when absent, ErrInvalidAssetName when the name is not a bare name.
	LoadTemplate(name string) (string, error)
}

// defaultLoader serves the package-level lookups below.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in page template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// ValidateAssetName rejects anything that is not a bare file name.
// Separators and dots are refused outright: names are joined onto a
// base path and given a fixed extension, so either would let a caller
// reach outside the asset directories or swap the file type.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}

	if strings.ContainsAny(name, `/\.`) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}

	return nil
}
