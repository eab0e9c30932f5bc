package markdown

import (
	"strconv"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// NodeKindRawMarkup is the kind of RawMarkup nodes.
var NodeKindRawMarkup = gmast.NewNodeKind("RawMarkup")

// NodeKindInlineRawMarkup is the kind of InlineRawMarkup nodes.
var NodeKindInlineRawMarkup = gmast.NewNodeKind("InlineRawMarkup")

// NodeKindSubstitutedText is the kind of SubstitutedText nodes.
var NodeKindSubstitutedText = gmast.NewNodeKind("SubstitutedText")

// RawMarkup is a block whose markup is written verbatim.
type RawMarkup struct {
	gmast.BaseBlock
	Markup string
}

// NewRawMarkup returns a RawMarkup block.
func NewRawMarkup(markup string) *RawMarkup {
	return &RawMarkup{Markup: markup}
}

func (n *RawMarkup) Kind() gmast.NodeKind { return NodeKindRawMarkup }

func (n *RawMarkup) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Markup": n.Markup}, nil)
}

// InlineRawMarkup is RawMarkup for inline positions.
type InlineRawMarkup struct {
	gmast.BaseInline
	Markup string
}

// NewInlineRawMarkup returns an InlineRawMarkup node.
func NewInlineRawMarkup(markup string) *InlineRawMarkup {
	return &InlineRawMarkup{Markup: markup}
}

func (n *InlineRawMarkup) Kind() gmast.NodeKind { return NodeKindInlineRawMarkup }

func (n *InlineRawMarkup) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{"Markup": n.Markup}, nil)
}

// SubstitutedText is a text run whose content no longer maps to the source.
type SubstitutedText struct {
	gmast.BaseInline
	Value         string
	SoftLineBreak bool
	HardLineBreak bool
}

func (n *SubstitutedText) Kind() gmast.NodeKind { return NodeKindSubstitutedText }

func (n *SubstitutedText) Dump(source []byte, level int) {
	gmast.DumpHelper(n, source, level, map[string]string{
		"Value":         n.Value,
		"SoftLineBreak": strconv.FormatBool(n.SoftLineBreak),
		"HardLineBreak": strconv.FormatBool(n.HardLineBreak),
	}, nil)
}

type nodeRenderer struct{}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(NodeKindRawMarkup, r.renderRawMarkup)
	reg.Register(NodeKindInlineRawMarkup, r.renderInlineRawMarkup)
	reg.Register(NodeKindSubstitutedText, r.renderSubstitutedText)
}

func (r *nodeRenderer) renderRawMarkup(w util.BufWriter, _ []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(n.(*RawMarkup).Markup)
	}
	return gmast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderInlineRawMarkup(w util.BufWriter, _ []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(n.(*InlineRawMarkup).Markup)
	}
	return gmast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderSubstitutedText(w util.BufWriter, _ []byte, n gmast.Node, entering bool) (gmast.WalkStatus, error) {
	if !entering {
		return gmast.WalkContinue, nil
	}
	t := n.(*SubstitutedText)
	// Same writer as plain text so escapes and entities resolve identically.
	gmhtml.DefaultWriter.Write(w, []byte(t.Value))
	switch {
	case t.HardLineBreak:
		_, _ = w.WriteString("<br>\n")
	case t.SoftLineBreak:
		_ = w.WriteByte('\n')
	}
	return gmast.WalkContinue, nil
}
