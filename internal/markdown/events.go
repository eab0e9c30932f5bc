package markdown

import (
	"bytes"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// EventKind tags an Event.
type EventKind int

const (
	EventOther EventKind = iota
	EventBlockStart
	EventBlockEnd
	EventText
	EventRawMarkup
)

func (k EventKind) String() string {
	switch k {
	case EventBlockStart:
		return "block-start"
	case EventBlockEnd:
		return "block-end"
	case EventText:
		return "text"
	case EventRawMarkup:
		return "raw-markup"
	default:
		return "other"
	}
}

// Event is one unit of document structure.
//
// Block start/end events are emitted for code blocks; Lang holds the fence
// language token and is empty for indented code. Text events carry the run's
// text. Nesting is implied by matching start/end pairs.
type Event struct {
	Kind     EventKind
	Lang     string
	Text     string
	Entering bool
	node     gmast.Node
}

// Events flattens the document tree into its ordered event sequence.
//
// A code block yields start, one text run holding its raw body, end; a block
// with an empty body has no text run. Text inside inline code spans and image
// alt text is reported as EventOther since it is never rewritten.
func (d *Document) Events() []Event {
	var events []Event
	_ = gmast.Walk(d.root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		switch node := n.(type) {
		case *gmast.FencedCodeBlock:
			lang := ""
			if node.Info != nil {
				lang = string(node.Language(d.source))
			}
			events = append(events, d.codeBlockEvents(n, lang, entering)...)
			return gmast.WalkSkipChildren, nil
		case *gmast.CodeBlock:
			events = append(events, d.codeBlockEvents(n, "", entering)...)
			return gmast.WalkSkipChildren, nil
		case *gmast.CodeSpan, *gmast.Image:
			events = append(events, Event{Kind: EventOther, Entering: entering, node: n})
			return gmast.WalkSkipChildren, nil
		case *gmast.Text:
			if entering {
				events = append(events, Event{Kind: EventText, Text: string(node.Segment.Value(d.source)), Entering: true, node: n})
			}
		case *gmast.String:
			if entering {
				events = append(events, Event{Kind: EventText, Text: string(node.Value), Entering: true, node: n})
			}
		case *gmast.HTMLBlock, *gmast.RawHTML:
			if entering {
				events = append(events, Event{Kind: EventRawMarkup, Text: string(rawHTML(n, d.source)), Entering: true, node: n})
			}
			return gmast.WalkSkipChildren, nil
		case *RawMarkup:
			if entering {
				events = append(events, Event{Kind: EventRawMarkup, Text: node.Markup, Entering: true, node: n})
			}
		default:
			events = append(events, Event{Kind: EventOther, Entering: entering, node: n})
		}
		return gmast.WalkContinue, nil
	})
	return events
}

// mergeTextRuns joins sibling text nodes that are contiguous in the source.
// goldmark splits text at every emphasis delimiter it could not pair, which
// would cut shortcodes such as :white_check_mark: into separate runs.
func mergeTextRuns(root gmast.Node, source []byte) {
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			t, ok := c.(*gmast.Text)
			if !ok {
				continue
			}
			for {
				next, ok := t.NextSibling().(*gmast.Text)
				if !ok || !contiguous(t, next, source) {
					break
				}
				t.Segment.Stop = next.Segment.Stop
				t.SetSoftLineBreak(next.SoftLineBreak())
				t.SetHardLineBreak(next.HardLineBreak())
				n.RemoveChild(n, next)
			}
		}
		return gmast.WalkContinue, nil
	})
}

func contiguous(a, b *gmast.Text, source []byte) bool {
	if a.SoftLineBreak() || a.HardLineBreak() || a.IsRaw() != b.IsRaw() {
		return false
	}
	if a.Segment.Stop != b.Segment.Start || b.Segment.Padding != 0 {
		return false
	}
	// A trailing backslash would start to escape the next run's first byte.
	return a.Segment.Stop == a.Segment.Start || source[a.Segment.Stop-1] != '\\'
}

func (d *Document) codeBlockEvents(n gmast.Node, lang string, entering bool) []Event {
	if !entering {
		return []Event{{Kind: EventBlockEnd, Lang: lang, node: n}}
	}
	events := []Event{{Kind: EventBlockStart, Lang: lang, Entering: true, node: n}}
	if n.Lines().Len() > 0 {
		events = append(events, Event{Kind: EventText, Lang: lang, Text: string(linesValue(n, d.source)), Entering: true, node: n})
	}
	return events
}

func linesValue(n gmast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.Bytes()
}

func rawHTML(n gmast.Node, source []byte) []byte {
	switch node := n.(type) {
	case *gmast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			segment := node.Segments.At(i)
			buf.Write(segment.Value(source))
		}
		return buf.Bytes()
	case *gmast.HTMLBlock:
		out := linesValue(n, source)
		if node.HasClosure() {
			out = append(out, node.ClosureLine.Value(source)...)
		}
		return out
	}
	return nil
}

// Suppress removes the event's node from the output. Suppressing an event
// whose node was already replaced or removed is a no-op.
func (d *Document) Suppress(ev Event) {
	if ev.node == nil || ev.node.Parent() == nil {
		return
	}
	ev.node.Parent().RemoveChild(ev.node.Parent(), ev.node)
}

// ReplaceRaw replaces the event's node with literal markup. For a code block
// text run the whole block is replaced.
func (d *Document) ReplaceRaw(ev Event, markup string) {
	if ev.node == nil || ev.node.Parent() == nil {
		return
	}
	var replacement gmast.Node
	if isBlock(ev.node) {
		replacement = NewRawMarkup(markup)
	} else {
		replacement = NewInlineRawMarkup(markup)
	}
	parent := ev.node.Parent()
	parent.ReplaceChild(parent, ev.node, replacement)
}

// ReplaceText swaps the text of a text run. Plain text runs keep their line
// break flags; code block runs are re-emitted as an escaped code block.
func (d *Document) ReplaceText(ev Event, value string) {
	if ev.Kind != EventText || ev.node == nil || ev.node.Parent() == nil {
		return
	}
	switch node := ev.node.(type) {
	case *gmast.Text:
		replacement := &SubstitutedText{
			Value:         value,
			SoftLineBreak: node.SoftLineBreak(),
			HardLineBreak: node.HardLineBreak(),
		}
		parent := node.Parent()
		parent.ReplaceChild(parent, node, replacement)
	case *gmast.String:
		node.Value = []byte(value)
	case *gmast.FencedCodeBlock, *gmast.CodeBlock:
		d.ReplaceRaw(ev, CodeBlockHTML(ev.Lang, value))
	}
}

func isBlock(n gmast.Node) bool {
	return n.Type() == gmast.TypeBlock || n.Type() == gmast.TypeDocument
}

// CodeBlockHTML renders code the way goldmark renders an unhighlighted block.
func CodeBlockHTML(lang, code string) string {
	var buf bytes.Buffer
	buf.WriteString("<pre><code")
	if lang != "" {
		buf.WriteString(` class="language-`)
		buf.Write(util.EscapeHTML([]byte(lang)))
		buf.WriteString(`"`)
	}
	buf.WriteString(">")
	buf.Write(util.EscapeHTML([]byte(code)))
	buf.WriteString("</code></pre>\n")
	return buf.String()
}
