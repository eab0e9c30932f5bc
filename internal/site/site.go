// Package site builds the immutable state shared by every document task of
// one site build.
package site

import (
	"github.com/alecthomas/chroma/v2"

	"git.home.luguber.info/inful/mdpages/internal/config"
	"git.home.luguber.info/inful/mdpages/internal/embed"
	"git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/glyph"
	"git.home.luguber.info/inful/mdpages/internal/handler"
	"git.home.luguber.info/inful/mdpages/internal/highlight"
	"git.home.luguber.info/inful/mdpages/internal/markdown"
	"git.home.luguber.info/inful/mdpages/internal/pipeline"
)

// Context is the site-wide state. Nothing in it is written after New returns,
// so it is shared by pointer across workers without locking.
type Context struct {
	cfg         config.Site
	grammars    *highlight.Grammars
	theme       *chroma.Style
	highlighter *highlight.Highlighter
	glyphs      *glyph.Replacer
	assets      *embed.Resolver
	handlers    *handler.Registry
	pipeline    *pipeline.Pipeline
}

// Option customizes construction.
type Option func(*options)

type options struct {
	glyphs   glyph.Table
	handlers map[string]handler.Handler
}

// WithGlyphTable replaces the GitHub shortcode table.
func WithGlyphTable(t glyph.Table) Option {
	return func(o *options) { o.glyphs = t }
}

// WithHandler registers an additional handler next to the builtins.
func WithHandler(name string, h handler.Handler) Option {
	return func(o *options) {
		if o.handlers == nil {
			o.handlers = make(map[string]handler.Handler)
		}
		o.handlers[name] = h
	}
}

// New loads grammars and theme and wires the handler registry and pipeline.
// An unknown syntax theme is a startup error.
func New(cfg *config.Site, opts ...Option) (*Context, error) {
	o := options{glyphs: glyph.GitHubTable()}
	for _, opt := range opts {
		opt(&o)
	}

	grammars, err := highlight.LoadGrammars(cfg.SyntaxDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load syntax grammars").
			Fatal().
			WithContext("path", cfg.SyntaxDir).
			Build()
	}
	theme, err := highlight.Theme(cfg.SyntaxTheme)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to load syntax theme").
			Fatal().
			WithContext("syntax_theme", cfg.SyntaxTheme).
			Build()
	}

	registry, err := newRegistry(cfg.Handlers, o.handlers)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to register handlers").
			Fatal().
			Build()
	}

	c := &Context{
		cfg:         *cfg,
		grammars:    grammars,
		theme:       theme,
		highlighter: highlight.New(grammars, theme),
		glyphs:      glyph.NewReplacer(o.glyphs),
		assets:      embed.NewResolver(cfg.ContentPath),
		handlers:    registry,
	}
	c.pipeline = pipeline.New(pipeline.Config{
		Site:        c,
		Parser:      markdown.New(),
		Highlighter: c.highlighter,
		Glyphs:      c.glyphs,
		Handlers:    c.handlers,
	})
	return c, nil
}

func newRegistry(aliases map[string]string, extra map[string]handler.Handler) (*handler.Registry, error) {
	r := handler.NewRegistry()
	if err := handler.RegisterBuiltins(r); err != nil {
		return nil, err
	}
	for name, h := range extra {
		if err := r.Register(name, h); err != nil {
			return nil, err
		}
	}
	if err := r.RegisterAliases(aliases); err != nil {
		return nil, err
	}
	return r, nil
}

// Config returns a copy of the site configuration.
func (c *Context) Config() config.Site { return c.cfg }

// ContentPath is the content root.
func (c *Context) ContentPath() string { return c.cfg.ContentPath }

// OutputPath is the output root.
func (c *Context) OutputPath() string { return c.cfg.OutputPath }

// Workers is the worker pool size for fan-out.
func (c *Context) Workers() int {
	if c.cfg.Workers < 1 {
		return 1
	}
	return c.cfg.Workers
}

func (c *Context) Assets() *embed.Resolver             { return c.assets }
func (c *Context) Handlers() *handler.Registry         { return c.handlers }
func (c *Context) Highlighter() *highlight.Highlighter { return c.highlighter }
func (c *Context) Theme() *chroma.Style                { return c.theme }
func (c *Context) Grammars() *highlight.Grammars       { return c.grammars }
func (c *Context) Pipeline() *pipeline.Pipeline        { return c.pipeline }
