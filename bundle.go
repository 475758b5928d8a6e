package flowsnap

import (
	"regexp"
	"strings"
)

// cdnScriptPattern matches the jsdelivr script tag that client-side
// mermaid rendering emits, at any pinned version.
var cdnScriptPattern = regexp.MustCompile(`<script\s+src="https://cdn\.jsdelivr\.net/npm/mermaid@[^"]*"></script>`)

// BundleOffline replaces the first CDN script tag in doc with an inline
// copy of the rendering engine, so the exported document renders with
// no network access. The returned bool reports whether a tag was found;
// when it is false the document comes back unchanged and the caller
// decides whether that matters.
//
// The splice works on match indexes rather than a regexp replace: the
// engine source is full of $-sequences that a replacement template
// would mangle.
func BundleOffline(doc, engineJS string) (string, bool) {
	loc := cdnScriptPattern.FindStringIndex(doc)
	if loc == nil {
		return doc, false
	}

	var b strings.Builder

	b.Grow(len(doc) + len(engineJS))
	b.WriteString(doc[:loc[0]])
	b.WriteString("<script>")
	b.WriteString(engineJS)
	b.WriteString("</script>")
	b.WriteString(doc[loc[1]:])

	return b.String(), true
}
