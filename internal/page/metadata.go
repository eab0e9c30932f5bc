// Package page holds the per-document metadata record extracted from a
// document's templateinfo block.
package page

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFavicon is used when a metadata block names no favicon.
const DefaultFavicon = "favicon.ico"

// DateLayout is the display format for page timestamps in listings.
const DateLayout = "January 2, 2006"

var (
	// ErrMetadataMissing indicates a document has no (or an empty) metadata block.
	ErrMetadataMissing = errors.New("templateinfo block missing")

	// ErrMetadataInvalid indicates the metadata block could not be decoded or lacks required fields.
	ErrMetadataInvalid = errors.New("templateinfo block invalid")
)

// Metadata is the page record extracted from a document. It is immutable once
// returned by Parse.
type Metadata struct {
	Style       string    `yaml:"style"`
	Template    string    `yaml:"template"`
	Favicon     string    `yaml:"favicon"`
	Time        time.Time `yaml:"time"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
}

// Parse decodes a metadata block body. Style and template paths are returned
// joined onto contentRoot; the favicon stays content-relative because it is
// loaded through the asset resolver.
func Parse(source, contentRoot string) (*Metadata, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrMetadataMissing
	}

	var meta Metadata
	if err := yaml.Unmarshal([]byte(source), &meta); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMetadataInvalid, err)
	}
	if meta.Favicon == "" {
		meta.Favicon = DefaultFavicon
	}
	if missing := meta.missingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMetadataInvalid, strings.Join(missing, ", "))
	}

	meta.Style = filepath.Join(contentRoot, meta.Style)
	meta.Template = filepath.Join(contentRoot, meta.Template)
	return &meta, nil
}

func (m *Metadata) missingFields() []string {
	var missing []string
	if m.Style == "" {
		missing = append(missing, "style")
	}
	if m.Template == "" {
		missing = append(missing, "template")
	}
	if m.Time.IsZero() {
		missing = append(missing, "time")
	}
	if m.Title == "" {
		missing = append(missing, "title")
	}
	if m.Description == "" {
		missing = append(missing, "description")
	}
	return missing
}

// FormattedTime renders the timestamp for listings.
func (m *Metadata) FormattedTime() string {
	return m.Time.Format(DateLayout)
}
