package flowsnap

import (
	"fmt"
	"regexp"
)

// Diagram blocks are matched lazily so adjacent blocks never merge,
// and (?s) lets diagram bodies span multiple lines.
var (
	diagramBlockPattern  = regexp.MustCompile(`(?s)<pre\s+class="mermaid">\s*(.*?)\s*</pre>`)
	diagramOpenerPattern = regexp.MustCompile(`<pre\s+class="mermaid">`)
)

// ExtractDiagrams lifts every mermaid block out of an HTML document, in
// document order. Each diagram keeps its markup verbatim apart from
// surrounding whitespace.
//
// Labels are assigned by position: diagram i takes labels[i] when
// provided and non-empty, otherwise the one-based fallback "diagram_N".
// Extra labels beyond the number of diagrams are ignored.
//
// The second return value counts opening tags that never closed. Such
// blocks produce no diagram; callers may want to surface the count
// since a truncated document usually means an authoring mistake.
func ExtractDiagrams(doc string, labels []string) ([]DiagramDefinition, int) {
	matches := diagramBlockPattern.FindAllStringSubmatch(doc, -1)
	openers := len(diagramOpenerPattern.FindAllStringIndex(doc, -1))

	diagrams := make([]DiagramDefinition, 0, len(matches))

	for i, m := range matches {
		diagrams = append(diagrams, DiagramDefinition{
			Index:     i,
			Label:     labelFor(i, labels),
			RawMarkup: m[1],
		})
	}

	return diagrams, openers - len(matches)
}

func labelFor(index int, labels []string) string {
	if index < len(labels) && labels[index] != "" {
		return labels[index]
	}

	return fmt.Sprintf("diagram_%d", index+1)
}

// countDiagramBlocks reports how many complete mermaid blocks a
// document contains, without building diagram definitions.
func countDiagramBlocks(doc string) int {
	return len(diagramBlockPattern.FindAllStringIndex(doc, -1))
}
