// Package embed loads binary assets from the content root and inlines them as
// base64 payloads, data URIs or self-contained <img> elements.
package embed

import (
	"encoding/base64"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AssetError reports an asset that could not be read. Path is the resolved
// filesystem path.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("read asset %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// Resolver reads assets relative to a content root.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver for contentRoot.
func NewResolver(contentRoot string) *Resolver {
	return &Resolver{root: contentRoot}
}

// Resolve joins a content-relative path onto the content root.
func (r *Resolver) Resolve(rel string) string {
	return filepath.Join(r.root, rel)
}

func (r *Resolver) read(rel string) (string, []byte, error) {
	path := r.Resolve(rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, &AssetError{Path: path, Err: err}
	}
	return path, data, nil
}

// Base64 returns the standard base64 encoding of the asset.
func (r *Resolver) Base64(rel string) (string, error) {
	_, data, err := r.read(rel)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DataURI returns a data: URI with the media type inferred from the extension.
func (r *Resolver) DataURI(rel string) (string, error) {
	path, data, err := r.read(rel)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len("data:;base64,") + base64.StdEncoding.EncodedLen(len(data)) + 32)
	sb.WriteString("data:")
	sb.WriteString(MediaType(path))
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String(), nil
}

// Image returns a self-contained <img> element embedding the asset.
func (r *Resolver) Image(rel, alt string) (string, error) {
	uri, err := r.DataURI(rel)
	if err != nil {
		return "", err
	}
	img := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Img,
		Data:     atom.Img.String(),
		Attr:     []html.Attribute{{Key: "src", Val: uri}},
	}
	if alt != "" {
		img.Attr = append(img.Attr, html.Attribute{Key: "alt", Val: alt})
	}
	var sb strings.Builder
	if err := html.Render(&sb, img); err != nil {
		return "", fmt.Errorf("render image %s: %w", rel, err)
	}
	return sb.String(), nil
}

// MediaType infers the media type of path from its extension.
func MediaType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := knownTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		// Drop parameters such as "; charset=utf-8".
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return "application/octet-stream"
}

// knownTypes pins types that vary across system mime tables.
var knownTypes = map[string]string{
	".ico":  "image/x-icon",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}
