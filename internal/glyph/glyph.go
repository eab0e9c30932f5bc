// Package glyph substitutes `:name:` shortcodes in text runs with the glyph
// they name, e.g. `:heart:` becomes ❤️.
package glyph

import (
	"strings"

	"github.com/yuin/goldmark-emoji/definition"
)

// Table resolves a shortcode name (without colons) to its replacement text.
type Table interface {
	Lookup(name string) (string, bool)
}

// emojiTable adapts the GitHub emoji definitions to Table.
type emojiTable struct {
	emojis definition.Emojis
}

// GitHubTable returns the GitHub shortcode table.
func GitHubTable() Table {
	return emojiTable{emojis: definition.Github()}
}

func (t emojiTable) Lookup(name string) (string, bool) {
	e, ok := t.emojis.Get(name)
	if !ok || len(e.Unicode) == 0 {
		return "", false
	}
	return string(e.Unicode), true
}

// MapTable is a fixed Table, mostly useful for tests and site-local glyphs.
type MapTable map[string]string

func (m MapTable) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Replacer applies a Table to text. It holds no mutable state and is safe for
// concurrent use.
type Replacer struct {
	table Table
}

// NewReplacer creates a Replacer backed by table.
func NewReplacer(table Table) *Replacer {
	return &Replacer{table: table}
}

// ReplaceAll substitutes every recognized shortcode in text. The boolean
// reports whether anything changed; when false the input is returned as is.
func (r *Replacer) ReplaceAll(text string) (string, bool) {
	if r == nil || r.table == nil || strings.IndexByte(text, ':') < 0 {
		return text, false
	}

	var out strings.Builder
	changed := false
	last := 0
	for i := 0; i < len(text); {
		if text[i] != ':' {
			i++
			continue
		}
		end := shortcodeEnd(text, i+1)
		if end < 0 {
			i++
			continue
		}
		glyph, ok := r.table.Lookup(text[i+1 : end])
		if !ok {
			// The closing colon may open the next shortcode.
			i = end
			continue
		}
		if !changed {
			out.Grow(len(text))
			changed = true
		}
		out.WriteString(text[last:i])
		out.WriteString(glyph)
		i = end + 1
		last = i
	}
	if !changed {
		return text, false
	}
	out.WriteString(text[last:])
	return out.String(), true
}

// shortcodeEnd returns the index of the colon closing a shortcode whose name
// starts at start, or -1 when the name is empty or contains other characters.
func shortcodeEnd(text string, start int) int {
	for j := start; j < len(text); j++ {
		c := text[j]
		switch {
		case c == ':':
			if j == start {
				return -1
			}
			return j
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '+', c == '-':
		default:
			return -1
		}
	}
	return -1
}
