package embed

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) *Resolver {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "icons"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "icons", "dot.svg"), []byte("<svg/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "favicon.ico"), []byte{0, 1, 2}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.unknownext"), []byte("x"), 0o644))
	return NewResolver(root)
}

func TestBase64(t *testing.T) {
	r := newFixture(t)
	got, err := r.Base64("favicon.ico")
	require.NoError(t, err)
	assert.Equal(t, "AAEC", got)
}

func TestDataURIAndImage(t *testing.T) {
	r := newFixture(t)

	uri, err := r.DataURI("icons/dot.svg")
	require.NoError(t, err)
	assert.Equal(t, "data:image/svg+xml;base64,PHN2Zy8+", uri)

	img, err := r.Image("icons/dot.svg", "")
	require.NoError(t, err)
	assert.Equal(t, `<img src="data:image/svg+xml;base64,PHN2Zy8+"/>`, img)

	img, err = r.Image("icons/dot.svg", `a "dot"`)
	require.NoError(t, err)
	assert.Contains(t, img, `alt="a &#34;dot&#34;"`)

	uri, err = r.DataURI("blob.unknownext")
	require.NoError(t, err)
	assert.Equal(t, "data:application/octet-stream;base64,eA==", uri)
}

func TestMissingAsset(t *testing.T) {
	r := newFixture(t)
	_, err := r.Image("icons/missing.png", "")
	require.Error(t, err)

	var assetErr *AssetError
	require.True(t, errors.As(err, &assetErr))
	assert.Equal(t, r.Resolve("icons/missing.png"), assetErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "image/png", MediaType("a/B.PNG"))
	assert.Equal(t, "image/x-icon", MediaType("favicon.ico"))
	assert.Equal(t, "text/css", MediaType("style.css"))
	assert.Equal(t, "application/octet-stream", MediaType("noext"))
}
