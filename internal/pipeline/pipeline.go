// Package pipeline turns one Markdown document into an HTML fragment and its
// page metadata.
//
// The document is parsed into an event stream and scanned once. Fenced code
// regions are routed by their language token: `templateinfo` blocks are
// buffered as metadata and removed, `handler:<name>` blocks are replaced by
// the named handler's output and blocks tagged with a known grammar are
// highlighted. Every text run goes through glyph substitution first.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/glyph"
	"git.home.luguber.info/inful/mdpages/internal/handler"
	"git.home.luguber.info/inful/mdpages/internal/highlight"
	"git.home.luguber.info/inful/mdpages/internal/logfields"
	"git.home.luguber.info/inful/mdpages/internal/markdown"
	"git.home.luguber.info/inful/mdpages/internal/page"
)

// MetadataLang is the fence language token of the metadata block.
const MetadataLang = "templateinfo"

// Output is a processed document.
type Output struct {
	HTML     string
	Metadata *page.Metadata
}

// Config wires a Pipeline to the shared site state.
type Config struct {
	Site        handler.Site
	Parser      *markdown.Parser
	Highlighter *highlight.Highlighter
	Glyphs      *glyph.Replacer
	Handlers    *handler.Registry
}

// Pipeline is stateless between calls and safe for concurrent use.
type Pipeline struct {
	cfg Config
}

// New creates a Pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Parser == nil {
		cfg.Parser = markdown.New()
	}
	if cfg.Handlers == nil {
		cfg.Handlers = handler.NewRegistry()
	}
	return &Pipeline{cfg: cfg}
}

// Process renders a document and extracts its metadata. A document without a
// metadata block fails with page.ErrMetadataMissing.
func (p *Pipeline) Process(ctx context.Context, r handler.Renderer, path string, source []byte) (*Output, error) {
	body, metaSource, err := p.transform(ctx, r, path, source)
	if err != nil {
		return nil, err
	}

	meta, err := page.Parse(metaSource, p.cfg.Site.ContentPath())
	if err != nil {
		category := derrors.CategoryConfig
		if errors.Is(err, page.ErrMetadataMissing) {
			category = derrors.CategoryStructure
		}
		return nil, derrors.WrapError(err, category, "extract page metadata").
			WithContext("document", path).
			Build()
	}
	return &Output{HTML: body, Metadata: meta}, nil
}

// Fragment renders a document body. A metadata block, if present, is removed
// and ignored.
func (p *Pipeline) Fragment(ctx context.Context, r handler.Renderer, path string, source []byte) (string, error) {
	body, _, err := p.transform(ctx, r, path, source)
	return body, err
}

func (p *Pipeline) transform(ctx context.Context, r handler.Renderer, path string, source []byte) (string, string, error) {
	doc := p.cfg.Parser.Parse(norm.NFC.Bytes(source))

	var (
		active string
		meta   strings.Builder
	)
	for _, ev := range doc.Events() {
		switch ev.Kind {
		case markdown.EventBlockStart:
			active = ev.Lang
		case markdown.EventBlockEnd:
			if isDirective(ev.Lang) {
				doc.Suppress(ev)
			}
			active = ""
		case markdown.EventText:
			if err := p.rewriteText(ctx, r, doc, ev, active, path, &meta); err != nil {
				return "", "", err
			}
		}
	}

	body, err := doc.Render()
	if err != nil {
		return "", "", derrors.WrapError(err, derrors.CategoryInternal, "render document").
			WithContext("document", path).
			Build()
	}
	slog.DebugContext(ctx, "Transformed document", logfields.Document(path))
	return body, meta.String(), nil
}

func (p *Pipeline) rewriteText(ctx context.Context, r handler.Renderer, doc *markdown.Document, ev markdown.Event, active, path string, meta *strings.Builder) error {
	text, changed := p.cfg.Glyphs.ReplaceAll(ev.Text)

	if active == MetadataLang {
		meta.WriteString(text)
		doc.Suppress(ev)
		return nil
	}

	if name, ok := handler.NameFromLang(active); ok {
		fragment, err := p.cfg.Handlers.Dispatch(ctx, handler.Request{
			Name:     name,
			Config:   ev.Text,
			Document: path,
			Site:     p.cfg.Site,
			Renderer: r,
		})
		if err != nil {
			return classifyHandlerError(err, name, path)
		}
		doc.ReplaceRaw(ev, fragment)
		return nil
	}

	if active != "" && p.cfg.Highlighter != nil && p.cfg.Highlighter.Supports(active) {
		colored, err := p.cfg.Highlighter.Highlight(active, text)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryInternal, "highlight code block").
				WithContext("document", path).
				Build()
		}
		doc.ReplaceRaw(ev, colored)
		return nil
	}

	if changed {
		doc.ReplaceText(ev, text)
	}
	return nil
}

func isDirective(lang string) bool {
	if lang == MetadataLang {
		return true
	}
	_, ok := handler.NameFromLang(lang)
	return ok
}

// classifyHandlerError keeps errors that are already classified, so failures
// from nested documents surface with their own category.
func classifyHandlerError(err error, name, path string) error {
	if derrors.IsClassified(err) {
		return err
	}
	if errors.Is(err, handler.ErrMissingHandler) {
		return derrors.WrapError(err, derrors.CategoryStructure, "unresolved handler").
			WithContext("document", path).
			WithContext("handler", name).
			Build()
	}
	return derrors.WrapError(err, derrors.CategoryHandler, "handler failed").
		WithContext("document", path).
		WithContext("handler", name).
		Build()
}
