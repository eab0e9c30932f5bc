// Package highlight wraps chroma grammars and themes for fenced code blocks.
package highlight

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Grammars is the syntax set: chroma's builtin lexers plus site-local XML
// lexers. It is read-only after LoadGrammars returns.
type Grammars struct {
	local map[string]chroma.Lexer
}

// LoadGrammars loads every *.xml lexer definition in dir on top of the builtin
// set. An empty dir yields the builtin set only.
func LoadGrammars(dir string) (*Grammars, error) {
	g := &Grammars{local: make(map[string]chroma.Lexer)}
	if dir == "" {
		return g, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read syntax directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		lexer, err := chroma.NewXMLLexer(os.DirFS(dir), entry.Name())
		if err != nil {
			return nil, fmt.Errorf("load syntax %s: %w", filepath.Join(dir, entry.Name()), err)
		}
		cfg := lexer.Config()
		for _, token := range append([]string{cfg.Name}, cfg.Aliases...) {
			g.local[strings.ToLower(token)] = lexer
		}
	}
	return g, nil
}

// Find returns the grammar for a fence language token, or nil when none matches.
func (g *Grammars) Find(token string) chroma.Lexer {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil
	}
	if g != nil {
		if lexer, ok := g.local[token]; ok {
			return lexer
		}
	}
	return lexers.Get(token)
}

// LocalNames lists the site-local grammar tokens, sorted.
func (g *Grammars) LocalNames() []string {
	names := make([]string, 0, len(g.local))
	for name := range g.local {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Theme returns the named chroma style. Unknown names are an error rather
// than chroma's silent fallback.
func Theme(name string) (*chroma.Style, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown syntax theme %q", name)
	}
	return style, nil
}

// Highlighter renders code to inline-styled HTML.
type Highlighter struct {
	grammars  *Grammars
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter for a grammar set and theme.
func New(grammars *Grammars, style *chroma.Style) *Highlighter {
	return &Highlighter{
		grammars:  grammars,
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}
}

// Supports reports whether token names a known grammar.
func (h *Highlighter) Supports(token string) bool {
	return h.grammars.Find(token) != nil
}

// Highlight colorizes code using the grammar named by token.
func (h *Highlighter) Highlight(token, code string) (string, error) {
	lexer := h.grammars.Find(token)
	if lexer == nil {
		return "", fmt.Errorf("no grammar for %q", token)
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", token, err)
	}
	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", token, err)
	}
	return sb.String(), nil
}
