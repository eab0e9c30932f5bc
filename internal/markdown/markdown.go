// Package markdown parses Markdown with goldmark and exposes the document as an
// ordered stream of structural events that can be rewritten in place before the
// tree is serialized back to HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Parser owns a goldmark instance. The configuration never changes after New,
// and goldmark creates per-call state in Parse and Render, so a Parser is safe
// to share between goroutines.
type Parser struct {
	md goldmark.Markdown
}

// New creates a Parser with GFM enabled and raw HTML passed through.
func New() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
				renderer.WithNodeRenderers(util.Prioritized(&nodeRenderer{}, 500)),
			),
		),
	}
}

// Document is one parsed source together with its mutable tree.
type Document struct {
	parser *Parser
	source []byte
	root   gmast.Node
}

// Parse parses source into a Document.
func (p *Parser) Parse(source []byte) *Document {
	root := p.md.Parser().Parse(text.NewReader(source))
	mergeTextRuns(root, source)
	return &Document{parser: p, source: source, root: root}
}

// Render serializes the (possibly rewritten) tree to HTML.
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := d.parser.md.Renderer().Render(&buf, d.source, d.root); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
