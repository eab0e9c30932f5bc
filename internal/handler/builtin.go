package handler

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Builtin handler names.
const (
	NameHeader  = "header"
	NameInclude = "include"
	NameIndex   = "index"
	NameAsset   = "asset"
)

// RegisterBuiltins adds the builtin handlers to r.
func RegisterBuiltins(r *Registry) error {
	builtins := []struct {
		name string
		h    Handler
	}{
		{NameHeader, Func(renderHeader)},
		{NameInclude, Func(renderInclude)},
		{NameIndex, Func(renderIndex)},
		{NameAsset, Func(renderAsset)},
	}
	for _, b := range builtins {
		if err := r.Register(b.name, b.h); err != nil {
			return err
		}
	}
	return nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func renderNode(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	b.WriteByte('\n')
	return b.String(), nil
}
