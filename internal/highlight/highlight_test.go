package highlight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme(t *testing.T) {
	style, err := Theme("github")
	require.NoError(t, err)
	assert.NotNil(t, style)

	_, err = Theme("no-such-theme")
	require.Error(t, err)
}

func TestHighlight(t *testing.T) {
	grammars, err := LoadGrammars("")
	require.NoError(t, err)
	style, err := Theme("github")
	require.NoError(t, err)
	h := New(grammars, style)

	assert.True(t, h.Supports("go"))
	assert.True(t, h.Supports("Rust"))
	assert.False(t, h.Supports("templateinfo"))
	assert.False(t, h.Supports(""))

	out, err := h.Highlight("go", "package main\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "<span")
	assert.Contains(t, out, "package")

	_, err = h.Highlight("templateinfo", "x")
	require.Error(t, err)
}

const iniLexer = `<lexer>
  <config>
    <name>SiteConf</name>
    <alias>siteconf</alias>
    <alias>sconf</alias>
  </config>
  <rules>
    <state name="root">
      <rule pattern="#.*\n">
        <token type="Comment"/>
      </rule>
      <rule pattern="[^#\n]+">
        <token type="Text"/>
      </rule>
      <rule pattern="\n">
        <token type="Text"/>
      </rule>
    </state>
  </rules>
</lexer>
`

func TestLoadGrammarsFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "siteconf.xml"), []byte(iniLexer), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644))

	grammars, err := LoadGrammars(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"sconf", "siteconf"}, grammars.LocalNames())
	assert.NotNil(t, grammars.Find("SCONF"))
	assert.NotNil(t, grammars.Find("python"), "builtin grammars stay available")
}

func TestLoadGrammarsMissingDirectory(t *testing.T) {
	_, err := LoadGrammars(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
