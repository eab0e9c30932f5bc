// Package compose fills page skeletons with rendered fragments.
package compose

import "strings"

// Placeholder markers recognized in page skeletons.
const (
	MarkerStylesheet  = "<<<PUT THE STYLESHEET HERE>>>"
	MarkerContent     = "<<<PUT THE MAIN CONTENT HERE>>>"
	MarkerHeader      = "<<<PUT THE HEADER HERE>>>"
	MarkerFavicon     = "<<<PUT THE FAVICON HERE>>>"
	MarkerTitle       = "<<<PUT THE TITLE HERE>>>"
	MarkerDescription = "<<<PUT THE DESCRIPTION HERE>>>"
)

// Fragments are the values substituted into a skeleton. A nil field leaves
// its marker in place.
type Fragments struct {
	Stylesheet  *string
	Content     *string
	Header      *string
	Favicon     *string
	Title       *string
	Description *string
}

// Text returns a pointer to s, for building Fragments literals.
func Text(s string) *string { return &s }

// Fill substitutes every marker that has a fragment. Markers are matched
// exactly and case-sensitively. Substituted text is not scanned again, so a
// fragment that contains a marker is inserted verbatim.
func Fill(skeleton string, f Fragments) string {
	var pairs []string
	add := func(marker string, value *string) {
		if value != nil {
			pairs = append(pairs, marker, *value)
		}
	}
	add(MarkerStylesheet, f.Stylesheet)
	add(MarkerContent, f.Content)
	add(MarkerHeader, f.Header)
	add(MarkerFavicon, f.Favicon)
	add(MarkerTitle, f.Title)
	add(MarkerDescription, f.Description)

	if len(pairs) == 0 {
		return skeleton
	}
	return strings.NewReplacer(pairs...).Replace(skeleton)
}
