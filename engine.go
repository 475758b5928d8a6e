package flowsnap

import (
	"fmt"
	"os"
	"strings"
)

// DefaultEnginePath is where an npm install of mermaid places the
// browser bundle, relative to the working directory.
const DefaultEnginePath = "node_modules/mermaid/dist/mermaid.min.js"

// LoadEngine reads the mermaid library source from path. Every render
// and export inlines this bundle, so a missing or empty file fails the
// whole run up front rather than once per diagram.
func LoadEngine(path string) (string, error) {
	if path == "" {
		path = DefaultEnginePath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied configuration
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngineAsset, err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrEngineAsset, path)
	}

	return string(data), nil
}
