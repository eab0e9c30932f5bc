// Package handler dispatches directive blocks to named fragment renderers.
//
// A handler block is a fenced code region whose language token starts with
// "handler:"; the remainder names the handler and the block body is its YAML
// configuration. Handlers are stateless and may run concurrently.
package handler

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdpages/internal/embed"
	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/page"
)

// Prefix marks a fenced code block as a handler block.
const Prefix = "handler:"

// Site is the read-only view of the site context available to handlers.
type Site interface {
	ContentPath() string
	Assets() *embed.Resolver
	Workers() int
}

// Renderer is the orchestrator's single-document entry point.
type Renderer interface {
	// RenderFragment renders a document body. Metadata is not required.
	RenderFragment(ctx context.Context, path string) (string, error)

	// RenderPage processes a document as a page and returns its metadata.
	RenderPage(ctx context.Context, path string) (*page.Metadata, error)
}

// Request is a single handler invocation.
type Request struct {
	// Name is the handler token as written in the document.
	Name string
	// Config is the raw body of the handler block.
	Config   string
	Document string
	Site     Site
	Renderer Renderer
}

// Handler renders a markup fragment for a handler block.
type Handler interface {
	Render(ctx context.Context, req Request) (string, error)
}

// Func adapts an ordinary function to the Handler interface.
type Func func(ctx context.Context, req Request) (string, error)

// Render calls f(ctx, req).
func (f Func) Render(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// NameFromLang returns the handler name carried by a fence language token.
func NameFromLang(lang string) (string, bool) {
	if !strings.HasPrefix(lang, Prefix) {
		return "", false
	}
	return strings.TrimPrefix(lang, Prefix), true
}

// decodeConfig unmarshals the block body into out. An empty body leaves out untouched.
func decodeConfig(req Request, out any) error {
	if strings.TrimSpace(req.Config) == "" {
		return nil
	}
	if err := yaml.Unmarshal([]byte(req.Config), out); err != nil {
		return derrors.WrapError(err, derrors.CategoryConfig, "invalid handler configuration").
			WithContext("handler", req.Name).
			WithContext("document", req.Document).
			Build()
	}
	return nil
}

func missingField(req Request, field string) error {
	return derrors.HandlerError("handler configuration missing "+field).
		WithContext("handler", req.Name).
		WithContext("document", req.Document).
		Build()
}
