package handler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/page"
	"git.home.luguber.info/inful/mdpages/internal/workerpool"
)

const markupExt = ".md"

type indexConfig struct {
	// Path is relative to the content root. Empty lists the calling
	// document's own directory.
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
}

type indexEntry struct {
	path string
	meta *page.Metadata
}

// renderIndex lists the markup documents directly inside a directory. Every
// child is processed as a page to obtain its metadata. Entries keep
// directory-listing order.
func renderIndex(ctx context.Context, req Request) (string, error) {
	var cfg indexConfig
	if err := decodeConfig(req, &cfg); err != nil {
		return "", err
	}

	dir := filepath.Dir(req.Document)
	if cfg.Path != "" {
		dir = filepath.Join(req.Site.ContentPath(), cfg.Path)
	}

	children, err := listChildren(dir, req.Document)
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryFileSystem, "read index directory").
			WithContext("document", req.Document).
			WithContext("path", dir).
			Build()
	}

	results := workerpool.RunOrdered(ctx, children, req.Site.Workers(), func(ctx context.Context, path string) (indexEntry, error) {
		meta, err := req.Renderer.RenderPage(ctx, path)
		return indexEntry{path: path, meta: meta}, err
	})
	if errs := workerpool.Errors(results); len(errs) > 0 {
		return "", errors.Join(errs...)
	}

	list := element(atom.Div, attr("class", "list-posts"))
	if cfg.Title != "" {
		h1 := element(atom.H1, attr("class", "list-title"))
		h1.AppendChild(textNode(cfg.Title))
		list.AppendChild(h1)
	}
	for _, r := range results {
		list.AppendChild(indexArticle(req.Document, r.Value))
	}
	return renderNode(list)
}

func listChildren(dir, self string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var children []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), markupExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if filepath.Clean(path) == filepath.Clean(self) {
			continue
		}
		children = append(children, path)
	}
	return children, nil
}

func indexArticle(document string, entry indexEntry) *html.Node {
	article := element(atom.Article, attr("class", "post-title"))

	link := element(atom.A, attr("href", pageHref(document, entry.path)), attr("class", "post-link"))
	link.AppendChild(textNode(entry.meta.Title))
	article.AppendChild(link)
	article.AppendChild(element(atom.Div, attr("class", "flex-break")))

	date := element(atom.Span, attr("class", "post-date"))
	date.AppendChild(textNode(entry.meta.FormattedTime()))
	article.AppendChild(date)
	return article
}

// pageHref links from the page rendered for document to the page rendered for target.
func pageHref(document, target string) string {
	htmlName := strings.TrimSuffix(target, filepath.Ext(target)) + ".html"
	rel, err := filepath.Rel(filepath.Dir(document), htmlName)
	if err != nil {
		rel = filepath.Base(htmlName)
	}
	return filepath.ToSlash(rel)
}
