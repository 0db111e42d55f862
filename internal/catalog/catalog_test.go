package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"alpha/style.yaml": &fstest.MapFile{Data: []byte(`name: alpha
default_theme: dark
stylesheet: main.css
resources: [a.svg, b.svg]
`)},
		"alpha/themes/dark.yaml": &fstest.MapFile{Data: []byte(`colors:
  primary: "#112233"
variables:
  size: 12
`)},
		"alpha/themes/light.yml":  &fstest.MapFile{Data: []byte(`colors: {primary: "#ffffff"}`)},
		"alpha/themes/notes.txt":  &fstest.MapFile{Data: []byte("ignored")},
		"alpha/themes/broken.yaml": &fstest.MapFile{Data: []byte("colors: [unterminated")},
		"alpha/themes/dup.yaml": &fstest.MapFile{Data: []byte(`colors: {primary: "#000000"}
variables: {primary: "x"}
`)},
		"alpha/main.css":       &fstest.MapFile{Data: []byte("color: {{primary}};")},
		"beta/style.yaml":      &fstest.MapFile{Data: []byte("name: beta\n")},
		"not-a-style/readme":   &fstest.MapFile{Data: []byte("no descriptor")},
		"gamma/style.yaml":     &fstest.MapFile{Data: []byte("name: [")},
		".hidden/style.yaml":   &fstest.MapFile{Data: []byte("name: hidden\n")},
	}
}

func TestFS_Styles(t *testing.T) {
	c := NewFS(testFS(), "/styles")

	styles, err := c.Styles()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, styles)
}

func TestFS_Themes(t *testing.T) {
	c := NewFS(testFS(), "/styles")

	themes, err := c.Themes("alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"broken", "dark", "dup", "light"}, themes)

	themes, err = c.Themes("beta")
	require.NoError(t, err)
	assert.Empty(t, themes)

	_, err = c.Themes("missing")
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestFS_Descriptor(t *testing.T) {
	c := NewFS(testFS(), "/styles")

	doc, err := c.Descriptor("alpha")
	require.NoError(t, err)
	assert.Equal(t, "dark", doc.GetFields()["default_theme"].GetStringValue())
	assert.Len(t, doc.GetFields()["resources"].GetListValue().GetValues(), 2)

	_, err = c.Descriptor("gamma")
	var docErr *DocumentError
	assert.ErrorAs(t, err, &docErr)

	_, err = c.Descriptor("../alpha")
	assert.ErrorIs(t, err, ErrStyleNotFound)
}

func TestFS_ThemeDocument(t *testing.T) {
	c := NewFS(testFS(), "/styles")

	doc, err := c.ThemeDocument("alpha", "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", doc.Name)
	assert.Equal(t, map[string]string{"primary": "#112233"}, doc.Colors)
	assert.Equal(t, map[string]string{"size": "12"}, doc.Variables)

	doc, err = c.ThemeDocument("alpha", "light")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", doc.Colors["primary"])

	_, err = c.ThemeDocument("alpha", "missing")
	assert.ErrorIs(t, err, ErrThemeNotFound)

	_, err = c.ThemeDocument("alpha", "../beta/style")
	assert.ErrorIs(t, err, ErrThemeNotFound)

	var docErr *DocumentError
	_, err = c.ThemeDocument("alpha", "broken")
	assert.ErrorAs(t, err, &docErr)

	_, err = c.ThemeDocument("alpha", "dup")
	assert.ErrorAs(t, err, &docErr)
}

func TestFS_ReadFileAndLocation(t *testing.T) {
	c := NewFS(testFS(), "/styles")

	text, err := c.ReadFile("alpha", "main.css")
	require.NoError(t, err)
	assert.Equal(t, "color: {{primary}};", text)

	_, err = c.ReadFile("alpha", "../beta/style.yaml")
	assert.Error(t, err)

	assert.Equal(t, filepath.Join("/styles", "alpha", "themes"), c.Location("alpha", ThemesLocation))
	assert.Equal(t, filepath.Join("/styles", "alpha", "resources"), c.Location("alpha", ResourceTemplatesLocation))
	assert.Equal(t, filepath.Join("/styles", "alpha", "fonts"), c.Location("alpha", FontsLocation))
}

func TestBuiltin(t *testing.T) {
	c := Builtin()

	styles, err := c.Styles()
	require.NoError(t, err)
	assert.Contains(t, styles, "plain")

	themes, err := c.Themes("plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"dark", "high_contrast", "light"}, themes)

	for _, theme := range themes {
		doc, err := c.ThemeDocument("plain", theme)
		require.NoError(t, err, theme)
		assert.NotEmpty(t, doc.Colors, theme)
	}
}

func TestLayered_FirstHitPrecedence(t *testing.T) {
	dir := t.TempDir()
	styleDir := filepath.Join(dir, "plain", "themes")
	require.NoError(t, os.MkdirAll(styleDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain", DescriptorFile), []byte("default_theme: only\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(styleDir, "only.yaml"), []byte("colors: {primary: \"#010203\"}\n"), 0o644))

	c := Open(filepath.Join(dir, "missing"), dir)

	styles, err := c.Styles()
	require.NoError(t, err)
	assert.Equal(t, []string{"plain"}, styles)

	themes, err := c.Themes("plain")
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, themes)
	assert.Equal(t, dir, c.StyleRoot("plain"))
	assert.Equal(t, dir, c.Root())

	_, err = c.Descriptor("nope")
	assert.True(t, errors.Is(err, ErrStyleNotFound))
}

func TestLayered_FallsBackToBuiltin(t *testing.T) {
	c := Open()

	themes, err := c.Themes("plain")
	require.NoError(t, err)
	assert.Contains(t, themes, "dark")
	assert.Equal(t, BuiltinRoot, c.Root())
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("/project")
	require.NotEmpty(t, paths)
	assert.Equal(t, filepath.Join("/project", ".themekit", "styles"), paths[0])
	assert.Equal(t, filepath.Join(string(filepath.Separator), "usr", "share", "themekit", "styles"), paths[len(paths)-1])
}
