package flowsnap

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// diagramDocData feeds the standalone diagram page template. All three
// fields are inserted verbatim, so the template must place them where
// raw interpolation is safe: EngineJS and InitOptions inside script
// tags, Markup inside the mermaid container.
type diagramDocData struct {
	EngineJS    string
	InitOptions string
	Markup      string
}

// parseDiagramTemplate parses the diagram page template once so a bad
// custom template fails at construction, not per diagram. text/template
// is deliberate here: html/template would escape the engine source.
func parseDiagramTemplate(text string) (*template.Template, error) {
	t, err := template.New("diagram").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse diagram template: %w", err)
	}

	return t, nil
}

// renderDiagramDocument produces the complete HTML document for one
// diagram: the inlined engine, an initialize call with the theme, and
// the diagram markup untouched.
func renderDiagramDocument(t *template.Template, engineJS, initOptions, markup string) (string, error) {
	var b strings.Builder

	data := diagramDocData{
		EngineJS:    engineJS,
		InitOptions: initOptions,
		Markup:      markup,
	}
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render diagram document: %w", err)
	}

	return b.String(), nil
}

// encodeInitOptions marshals theme options into the JSON object passed
// to mermaid.initialize. Struct field order fixes the key order, which
// keeps generated documents byte-stable for a given theme.
func encodeInitOptions(theme ThemeOptions) (string, error) {
	data, err := json.Marshal(theme)
	if err != nil {
		return "", fmt.Errorf("encode theme options: %w", err)
	}

	return string(data), nil
}
