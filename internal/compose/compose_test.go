package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const skeleton = `<html><head><title><<<PUT THE TITLE HERE>>></title>
<meta name="description" content="<<<PUT THE DESCRIPTION HERE>>>">
<link rel="icon" href="data:image/x-icon;base64,<<<PUT THE FAVICON HERE>>>">
<style><<<PUT THE STYLESHEET HERE>>></style></head>
<body><<<PUT THE HEADER HERE>>><main><<<PUT THE MAIN CONTENT HERE>>></main></body></html>`

func TestFill_AllMarkers(t *testing.T) {
	out := Fill(skeleton, Fragments{
		Stylesheet:  Text("body{}"),
		Content:     Text("<p>hi</p>"),
		Header:      Text("<nav></nav>"),
		Favicon:     Text("AAAA"),
		Title:       Text("Hi"),
		Description: Text("desc"),
	})

	assert.Equal(t, `<html><head><title>Hi</title>
<meta name="description" content="desc">
<link rel="icon" href="data:image/x-icon;base64,AAAA">
<style>body{}</style></head>
<body><nav></nav><main><p>hi</p></main></body></html>`, out)
	assert.NotContains(t, out, "<<<")
}

func TestFill_UnmatchedMarkersStay(t *testing.T) {
	out := Fill(skeleton, Fragments{Title: Text("Hi")})
	assert.Contains(t, out, "<title>Hi</title>")
	assert.Contains(t, out, MarkerHeader)
	assert.Contains(t, out, MarkerContent)
	assert.Contains(t, out, MarkerFavicon)

	assert.Equal(t, skeleton, Fill(skeleton, Fragments{}))
}

func TestFill_EmptyFragmentRemovesMarker(t *testing.T) {
	out := Fill("a<<<PUT THE HEADER HERE>>>b", Fragments{Header: Text("")})
	assert.Equal(t, "ab", out)
}

func TestFill_CaseSensitiveAndRepeated(t *testing.T) {
	out := Fill("<<<put the title here>>> <<<PUT THE TITLE HERE>>>|<<<PUT THE TITLE HERE>>>", Fragments{Title: Text("T")})
	assert.Equal(t, "<<<put the title here>>> T|T", out)
}

func TestFill_FragmentsNotRescanned(t *testing.T) {
	out := Fill("<<<PUT THE MAIN CONTENT HERE>>><<<PUT THE TITLE HERE>>>", Fragments{
		Content: Text("literal <<<PUT THE TITLE HERE>>>"),
		Title:   Text("T"),
	})
	assert.Equal(t, "literal <<<PUT THE TITLE HERE>>>T", out)
}
