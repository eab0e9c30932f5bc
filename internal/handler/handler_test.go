package handler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdpages/internal/embed"
	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/page"
)

type fakeSite struct {
	root   string
	assets *embed.Resolver
}

func newFakeSite(t *testing.T) *fakeSite {
	t.Helper()
	root := t.TempDir()
	return &fakeSite{root: root, assets: embed.NewResolver(root)}
}

func (s *fakeSite) ContentPath() string     { return s.root }
func (s *fakeSite) Assets() *embed.Resolver { return s.assets }
func (s *fakeSite) Workers() int            { return 2 }

func (s *fakeSite) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(s.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type fakeRenderer struct {
	mu        sync.Mutex
	fragments map[string]string
	pages     map[string]*page.Metadata
	rendered  []string
}

func (r *fakeRenderer) RenderFragment(_ context.Context, path string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = append(r.rendered, path)
	body, ok := r.fragments[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return body, nil
}

func (r *fakeRenderer) RenderPage(_ context.Context, path string) (*page.Metadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = append(r.rendered, path)
	meta, ok := r.pages[path]
	if !ok {
		return nil, page.ErrMetadataMissing
	}
	return meta, nil
}

func TestRegistry_RegisterValidation(t *testing.T) {
	r := NewRegistry()
	noop := Func(func(context.Context, Request) (string, error) { return "", nil })

	require.NoError(t, r.Register("x", noop))
	assert.Error(t, r.Register("x", noop))
	assert.Error(t, r.Register("", noop))
	assert.Error(t, r.Register("y", nil))
	assert.True(t, r.Has("x"))
	assert.False(t, r.Has("y"))
}

func TestRegistry_DispatchMissingHandler(t *testing.T) {
	r := NewRegistry()
	out, err := r.Dispatch(context.Background(), Request{Name: "nope", Document: "content/a.md"})
	require.Error(t, err)
	assert.Empty(t, out)

	var missing *MissingHandlerError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "nope", missing.Name)
	assert.Equal(t, "content/a.md", missing.Document)
	assert.ErrorIs(t, err, ErrMissingHandler)
	assert.Contains(t, err.Error(), `"nope"`)
	assert.Contains(t, err.Error(), "content/a.md")
}

func TestRegistry_DispatchPropagatesHandlerError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	require.NoError(t, r.Register("fail", Func(func(context.Context, Request) (string, error) { return "", boom })))

	_, err := r.Dispatch(context.Background(), Request{Name: "fail"})
	assert.Same(t, boom, err)
}

func TestRegistry_Aliases(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltins(r))
	require.NoError(t, r.RegisterAliases(map[string]string{"nav": NameHeader, "toc": NameIndex}))
	assert.Equal(t, []string{"asset", "header", "include", "index", "nav", "toc"}, r.Names())

	err := r.RegisterAliases(map[string]string{"bad": "missing"})
	assert.Error(t, err)
}

func TestNameFromLang(t *testing.T) {
	name, ok := NameFromLang("handler:header")
	assert.True(t, ok)
	assert.Equal(t, "header", name)

	_, ok = NameFromLang("go")
	assert.False(t, ok)
}

func TestHeader_IconsAndSoftFail(t *testing.T) {
	site := newFakeSite(t)
	site.write(t, "icons/gh.svg", "<svg/>")

	cfg := strings.Join([]string{
		"left:",
		"  - {label: Home, href: /}",
		"  - {label: Blog, href: /blog}",
		"right:",
		"  - {label: GitHub, icon: icons/gh.svg, href: 'https://github.com/x'}",
		"  - {label: Twitch, icon: icons/missing.svg, href: 'https://twitch.tv/x'}",
	}, "\n")

	out, err := renderHeader(context.Background(), Request{Name: NameHeader, Config: cfg, Document: "d.md", Site: site})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<nav class="navbar" role="navigation"><ul>`))
	assert.Contains(t, out, `<li><a href="/">Home</a></li>`)
	assert.Contains(t, out, `<li><a href="/blog">Blog</a></li>`)
	assert.Contains(t, out, `<li style="float:right"><a href="https://github.com/x"><img src="data:image/svg+xml;base64,`)
	assert.Contains(t, out, `alt="GitHub"`)
	assert.Contains(t, out, `<li style="float:right"><a href="https://twitch.tv/x">Twitch</a></li>`)
}

func TestHeader_InvalidConfig(t *testing.T) {
	site := newFakeSite(t)
	_, err := renderHeader(context.Background(), Request{Name: NameHeader, Config: "left: [", Document: "d.md", Site: site})
	require.Error(t, err)
	assert.True(t, derrors.HasCategory(err, derrors.CategoryConfig))
}

func TestInclude(t *testing.T) {
	site := newFakeSite(t)
	target := filepath.Join(site.root, "parts", "b.md")
	renderer := &fakeRenderer{fragments: map[string]string{target: "<p>B</p>\n"}}

	out, err := renderInclude(context.Background(), Request{Name: NameInclude, Config: "path: parts/b.md", Site: site, Renderer: renderer})
	require.NoError(t, err)
	assert.Equal(t, "<p>B</p>\n", out)

	_, err = renderInclude(context.Background(), Request{Name: NameInclude, Config: "", Site: site, Renderer: renderer})
	assert.True(t, derrors.HasCategory(err, derrors.CategoryHandler))
}

func TestIndex_ListsChildrenSkippingSelf(t *testing.T) {
	site := newFakeSite(t)
	self := site.write(t, "blog/index.md", "")
	a := site.write(t, "blog/a.md", "")
	b := site.write(t, "blog/b.MD", "")
	site.write(t, "blog/notes.txt", "")
	require.NoError(t, os.MkdirAll(filepath.Join(site.root, "blog", "sub.md"), 0o750))

	renderer := &fakeRenderer{pages: map[string]*page.Metadata{
		a: {Title: "Alpha", Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		b: {Title: "Beta <2>", Time: time.Date(2020, 10, 23, 0, 0, 0, 0, time.UTC)},
	}}

	out, err := renderIndex(context.Background(), Request{
		Name: NameIndex, Config: "title: Blogs", Document: self, Site: site, Renderer: renderer,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<div class="list-posts"><h1 class="list-title">Blogs</h1>`))
	assert.Contains(t, out, `<a href="a.html" class="post-link">Alpha</a>`)
	assert.Contains(t, out, `<span class="post-date">January 1, 2021</span>`)
	assert.Contains(t, out, `<a href="b.html" class="post-link">Beta &lt;2&gt;</a>`)
	assert.Contains(t, out, `<span class="post-date">October 23, 2020</span>`)
	assert.NotContains(t, renderer.rendered, self)
	assert.Len(t, renderer.rendered, 2)
}

func TestIndex_OtherDirectoryAndErrors(t *testing.T) {
	site := newFakeSite(t)
	self := site.write(t, "index.md", "")
	post := site.write(t, "posts/p.md", "")
	site.write(t, "posts/broken.md", "")

	renderer := &fakeRenderer{pages: map[string]*page.Metadata{
		post: {Title: "P", Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}

	_, err := renderIndex(context.Background(), Request{Name: NameIndex, Config: "path: posts", Document: self, Site: site, Renderer: renderer})
	require.Error(t, err)
	assert.ErrorIs(t, err, page.ErrMetadataMissing)

	require.NoError(t, os.Remove(filepath.Join(site.root, "posts", "broken.md")))
	out, err := renderIndex(context.Background(), Request{Name: NameIndex, Config: "path: posts", Document: self, Site: site, Renderer: renderer})
	require.NoError(t, err)
	assert.Contains(t, out, `<a href="posts/p.html" class="post-link">P</a>`)

	_, err = renderIndex(context.Background(), Request{Name: NameIndex, Config: "path: nowhere", Document: self, Site: site, Renderer: renderer})
	assert.True(t, derrors.HasCategory(err, derrors.CategoryFileSystem))
}

func TestAsset(t *testing.T) {
	site := newFakeSite(t)
	site.write(t, "img/dot.png", "\x89PNG")

	out, err := renderAsset(context.Background(), Request{Name: NameAsset, Config: "path: img/dot.png\nalt: a dot", Site: site})
	require.NoError(t, err)
	assert.Contains(t, out, `src="data:image/png;base64,`)
	assert.Contains(t, out, `alt="a dot"`)

	_, err = renderAsset(context.Background(), Request{Name: NameAsset, Config: "path: img/none.png", Document: "d.md", Site: site})
	require.Error(t, err)
	var assetErr *embed.AssetError
	assert.True(t, errors.As(err, &assetErr))
}
