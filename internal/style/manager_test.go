package style

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/themekit/internal/catalog"
	"github.com/opencode-ai/themekit/internal/palette"
	"github.com/opencode-ai/themekit/internal/resources"
)

func file(text string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(text)}
}

func testCatalog() catalog.Catalog {
	return catalog.NewFS(fstest.MapFS{
		"alpha/style.yaml": file(`default_theme: dark
stylesheet: main.css
icon: icon.svg
resources: [a.svg, b.svg]
`),
		"alpha/main.css":            file("color: {{primary}};"),
		"alpha/icon.svg":            file("<svg/>"),
		"alpha/resources/a.svg":     file(`<svg fill="{{primary}}"/>`),
		"alpha/resources/b.svg":     file(`<svg stroke="{{background}}"/>`),
		"alpha/themes/dark.yaml":    file("colors:\n  primary: \"#112233\"\n  background: \"#000000\"\nvariables:\n  size: \"12\"\n"),
		"alpha/themes/light.yaml":   file("colors:\n  primary: \"#ffffff\"\n"),
		"alpha/themes/broken.yaml":  file("colors: [unterminated"),
		"beta/style.yaml":           file("stylesheet: main.css\npalette:\n  primary: accent\n"),
		"beta/main.css":             file("a { color: {{accent}}; }"),
		"beta/themes/zeta.yaml":     file("colors: {accent: \"#000000\"}\n"),
		"beta/themes/eta.yaml":      file("colors: {accent: \"#abcdef\"}\n"),
		"gamma/style.yaml":          file("name: ["),
		"delta/style.yaml":          file("default_theme: nope\n"),
		"delta/themes/only.yaml":    file("colors: {}\n"),
		"epsilon/style.yaml":        file("resources: [gone.svg]\n"),
		"epsilon/themes/t.yaml":     file("colors: {}\n"),
		"omega/style.yaml":          file("stylesheet: main.css\n"),
		"omega/main.css":            file("a {{accent}}"),
		"omega/themes/plain.yaml":   file("variables: {size: \"1\"}\n"),
	}, "/styles")
}

type memoryWriter struct {
	files  map[string]string
	order  []string
	failOn string
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{files: make(map[string]string)}
}

func (w *memoryWriter) write(name, text string) error {
	if name == w.failOn {
		return errors.New("disk full")
	}
	w.files[name] = text
	w.order = append(w.order, name)
	return nil
}

func (w *memoryWriter) Materialize(name, text string) error {
	return w.write(name, text)
}

func (w *memoryWriter) WriteStylesheet(name, text string) error {
	return w.write(name, text)
}

func newManager(t *testing.T, opts Options) *Manager {
	t.Helper()
	if opts.Catalog == nil {
		opts.Catalog = testCatalog()
	}
	m, err := NewManager(opts)
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresCatalog(t *testing.T) {
	_, err := NewManager(Options{})
	require.Error(t, err)
}

func TestAlphaDarkOverrideScenario(t *testing.T) {
	m := newManager(t, Options{})

	require.NoError(t, m.SetCurrentStyle("alpha"))
	assert.Equal(t, "dark", m.CurrentTheme())

	require.NoError(t, m.UpdateStylesheet())
	assert.Equal(t, "color: #112233;", m.StyleSheet())

	m.SetThemeVariableValue("primary", "#ffffff")
	require.NoError(t, m.UpdateStylesheet())
	assert.Equal(t, "color: #ffffff;", m.StyleSheet())
	assert.Equal(t, NoError, m.ErrorKind())
	assert.Empty(t, m.ErrorString())
	assert.NoError(t, m.Err())
}

func TestUpdateStylesheetIsIdempotent(t *testing.T) {
	m := newManager(t, Options{})
	require.NoError(t, m.SetCurrentStyle("alpha"))

	require.NoError(t, m.UpdateStylesheet())
	first := m.StyleSheet()
	require.NoError(t, m.UpdateStylesheet())

	assert.Equal(t, first, m.StyleSheet())
}

func TestMissingVariableKeepsPriorStylesheet(t *testing.T) {
	m := newManager(t, Options{})
	require.NoError(t, m.SetCurrentStyle("omega"))

	m.SetThemeVariableValue("accent", "red")
	require.NoError(t, m.UpdateStylesheet())
	require.Equal(t, "a red", m.StyleSheet())

	m.ClearThemeVariableValues()
	err := m.UpdateStylesheet()
	require.Error(t, err)

	assert.Equal(t, TemplateError, KindOf(err))
	assert.Equal(t, TemplateError, m.ErrorKind())
	assert.Contains(t, m.ErrorString(), "accent")
	assert.Equal(t, "a red", m.StyleSheet())
}

func TestResourceFailureBlocksStylesheet(t *testing.T) {
	w := newMemoryWriter()
	m := newManager(t, Options{Materializer: w})
	require.NoError(t, m.SetCurrentStyle("alpha"))
	require.NoError(t, m.UpdateStylesheet())
	require.Equal(t, "color: #112233;", m.StyleSheet())

	var events []Event
	m.Subscribe(func(e Event) { events = append(events, e) })

	// light has no background, so b.svg cannot be rendered.
	require.NoError(t, m.SetCurrentTheme("light"))
	w.order = nil

	err := m.UpdateStylesheet()
	require.Error(t, err)

	assert.Equal(t, ResourceGenerationError, m.ErrorKind())
	var genErr *resources.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "b.svg", genErr.Name)

	assert.Equal(t, "color: #112233;", m.StyleSheet())
	// a.svg from the failed run is not rolled back.
	assert.Equal(t, []string{"a.svg"}, w.order)
	assert.Equal(t, `<svg fill="#ffffff"/>`, w.files["a.svg"])
	assert.Equal(t, []Event{{Type: EventThemeChanged, Name: "light"}}, events)
}

func TestMaterializerFailureIsResourceError(t *testing.T) {
	w := newMemoryWriter()
	w.failOn = "a.svg"
	m := newManager(t, Options{Materializer: w})
	require.NoError(t, m.SetCurrentStyle("alpha"))

	err := m.GenerateResources()
	require.Error(t, err)
	assert.Equal(t, ResourceGenerationError, KindOf(err))
	assert.Empty(t, w.order)
}

func TestProcessStyleTemplateLeavesStylesheet(t *testing.T) {
	w := newMemoryWriter()
	var applied []palette.Palette
	m := newManager(t, Options{
		Materializer: w,
		PaletteSink:  palette.SinkFunc(func(p palette.Palette) { applied = append(applied, p) }),
	})
	require.NoError(t, m.SetCurrentStyle("alpha"))

	require.NoError(t, m.ProcessStyleTemplate())

	assert.Empty(t, m.StyleSheet())
	assert.Equal(t, []string{"a.svg", "b.svg"}, w.order)
	require.Len(t, applied, 1)
	assert.Equal(t, "#112233", applied[0].Hex(palette.RolePrimary))
}

func TestOverridesSurviveThemeAndStyleChanges(t *testing.T) {
	m := newManager(t, Options{})
	require.NoError(t, m.SetCurrentStyle("alpha"))
	m.SetThemeVariableValue("accent", "#ff0000")
	m.SetThemeVariableValue("primary", "#010101")

	require.NoError(t, m.SetCurrentTheme("light"))
	assert.Equal(t, "#010101", m.ThemeVariableValue("primary"))
	// Theme values of the previous theme are gone.
	assert.Empty(t, m.ThemeVariableValue("background"))
	assert.Empty(t, m.ThemeVariableValue("size"))

	require.NoError(t, m.SetCurrentStyle("beta"))
	assert.Equal(t, "#ff0000", m.ThemeVariableValue("accent"))
	require.NoError(t, m.UpdateStylesheet())
	assert.Equal(t, "a { color: #ff0000; }", m.StyleSheet())

	m.ClearThemeVariableValues()
	assert.Equal(t, "#abcdef", m.ThemeVariableValue("accent"))
}

func TestSetCurrentStyleDefaultTheme(t *testing.T) {
	m := newManager(t, Options{})

	require.NoError(t, m.SetCurrentStyle("beta"))
	assert.Equal(t, "beta", m.CurrentStyle())
	assert.Equal(t, "eta", m.CurrentTheme())
	assert.Equal(t, []string{"eta", "zeta"}, m.Themes())
	assert.Equal(t, map[string]string{"accent": "#abcdef"}, m.ThemeColorVariables())
}

func TestSetCurrentStyleFailures(t *testing.T) {
	cases := []struct {
		name  string
		style string
		kind  ErrorKind
	}{
		{name: "unknown", style: "nope", kind: StyleDescriptorError},
		{name: "malformed descriptor", style: "gamma", kind: StyleDescriptorError},
		{name: "missing default theme", style: "delta", kind: StyleDescriptorError},
		{name: "missing resource template", style: "epsilon", kind: StyleDescriptorError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newManager(t, Options{})
			require.NoError(t, m.SetCurrentStyle("alpha"))

			var events []Event
			m.Subscribe(func(e Event) { events = append(events, e) })

			err := m.SetCurrentStyle(tc.style)
			require.Error(t, err)
			assert.Equal(t, tc.kind, m.ErrorKind())
			assert.NotEmpty(t, m.ErrorString())
			assert.Equal(t, "alpha", m.CurrentStyle())
			assert.Equal(t, "dark", m.CurrentTheme())
			assert.Empty(t, events)
		})
	}

	m := newManager(t, Options{})
	err := m.SetCurrentStyle("nope")
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestSetCurrentThemeFailures(t *testing.T) {
	m := newManager(t, Options{})

	err := m.SetCurrentTheme("dark")
	require.ErrorIs(t, err, ErrNoStyle)
	assert.Equal(t, ThemeLoadError, m.ErrorKind())

	require.NoError(t, m.SetCurrentStyle("alpha"))
	assert.Equal(t, NoError, m.ErrorKind())

	err = m.SetCurrentTheme("solarized")
	require.ErrorIs(t, err, ErrUnknownTheme)
	assert.Equal(t, ThemeLoadError, m.ErrorKind())

	err = m.SetCurrentTheme("broken")
	require.Error(t, err)
	assert.Equal(t, ThemeLoadError, KindOf(err))
	var docErr *catalog.DocumentError
	assert.ErrorAs(t, err, &docErr)

	assert.Equal(t, "dark", m.CurrentTheme())
	assert.Equal(t, "#112233", m.ThemeVariableValue("primary"))
}

func TestUpdateWithoutStyle(t *testing.T) {
	m := newManager(t, Options{})

	err := m.UpdateStylesheet()
	require.ErrorIs(t, err, ErrNoStyle)
	assert.Equal(t, StyleDescriptorError, m.ErrorKind())

	require.ErrorIs(t, m.ProcessStyleTemplate(), ErrNoStyle)
	require.ErrorIs(t, m.GenerateResources(), ErrNoStyle)
}

func TestNotificationsFireAfterCommit(t *testing.T) {
	m := newManager(t, Options{})

	type seen struct {
		event      Event
		style      string
		theme      string
		stylesheet string
	}
	var got []seen
	cancel := m.Subscribe(func(e Event) {
		got = append(got, seen{e, m.CurrentStyle(), m.CurrentTheme(), m.StyleSheet()})
	})

	require.NoError(t, m.SetCurrentStyle("alpha"))
	require.NoError(t, m.SetCurrentTheme("light"))
	m.SetThemeVariableValue("background", "#222222")
	require.NoError(t, m.UpdateStylesheet())

	assert.Equal(t, []seen{
		{Event{Type: EventStyleChanged, Name: "alpha"}, "alpha", "dark", ""},
		{Event{Type: EventThemeChanged, Name: "light"}, "alpha", "light", ""},
		{Event{Type: EventStylesheetChanged}, "alpha", "light", "color: #ffffff;"},
	}, got)

	cancel()
	cancel()
	require.NoError(t, m.UpdateStylesheet())
	assert.Len(t, got, 3)
}

func TestObserversRunInRegistrationOrder(t *testing.T) {
	m := newManager(t, Options{})

	var order []string
	m.Subscribe(func(Event) { order = append(order, "first") })
	var cancelSecond func()
	cancelSecond = m.Subscribe(func(Event) {
		order = append(order, "second")
		cancelSecond()
	})
	m.Subscribe(func(Event) { order = append(order, "third") })

	require.NoError(t, m.SetCurrentStyle("alpha"))
	require.NoError(t, m.SetCurrentTheme("light"))

	assert.Equal(t, []string{"first", "second", "third", "first", "third"}, order)
}

func TestErrorStateResetsOnNextOperation(t *testing.T) {
	m := newManager(t, Options{})
	require.NoError(t, m.SetCurrentStyle("omega"))

	require.Error(t, m.UpdateStylesheet())
	require.Equal(t, TemplateError, m.ErrorKind())

	m.SetThemeVariableValue("accent", "blue")
	// Setting a variable is not a pipeline run and keeps the error.
	assert.Equal(t, TemplateError, m.ErrorKind())

	require.NoError(t, m.UpdateStylesheet())
	assert.Equal(t, NoError, m.ErrorKind())
	assert.Empty(t, m.ErrorString())
}

func TestExportFailureKeepsStylesheet(t *testing.T) {
	w := newMemoryWriter()
	m := newManager(t, Options{Writer: w})
	require.NoError(t, m.SetCurrentStyle("alpha"))
	require.NoError(t, m.UpdateStylesheet())
	assert.Equal(t, "color: #112233;", w.files["alpha.css"])

	w.failOn = "alpha.css"
	m.SetThemeVariableValue("primary", "#ffffff")
	err := m.UpdateStylesheet()
	require.Error(t, err)

	assert.Equal(t, ExportError, m.ErrorKind())
	assert.Equal(t, "color: #112233;", m.StyleSheet())
}

func TestProcessStylesheetTemplate(t *testing.T) {
	m := newManager(t, Options{})
	require.NoError(t, m.SetCurrentStyle("alpha"))

	out, err := m.ProcessStylesheetTemplate("p { font-size: {{size}}px; }", "")
	require.NoError(t, err)
	assert.Equal(t, "p { font-size: 12px; }", out)
	assert.Empty(t, m.StyleSheet())

	_, err = m.ProcessStylesheetTemplate("plain", "extra.css")
	require.Error(t, err)
	assert.Equal(t, ExportError, m.ErrorKind())

	_, err = m.ProcessStylesheetTemplate("{{nope}}", "")
	require.Error(t, err)
	assert.Equal(t, TemplateError, m.ErrorKind())
}

func TestDefaultOutputWriter(t *testing.T) {
	dir := t.TempDir()
	m := newManager(t, Options{OutputDir: dir})
	require.NoError(t, m.SetCurrentStyle("alpha"))
	require.NoError(t, m.UpdateStylesheet())

	assert.Equal(t, filepath.Join(dir, "alpha"), m.CurrentStyleOutputPath())

	data, err := os.ReadFile(filepath.Join(dir, "alpha", "alpha.css"))
	require.NoError(t, err)
	assert.Equal(t, "color: #112233;", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "alpha", "b.svg"))
	require.NoError(t, err)
	assert.Equal(t, `<svg stroke="#000000"/>`, string(data))

	out, err := m.ProcessStylesheetTemplate("extra {{size}}", "extra.css")
	require.NoError(t, err)
	assert.Equal(t, "extra 12", out)
	_, err = os.Stat(filepath.Join(dir, "alpha", "extra.css"))
	assert.NoError(t, err)
}

func TestPaletteRemapping(t *testing.T) {
	var applied palette.Palette
	m := newManager(t, Options{
		PaletteSink: palette.SinkFunc(func(p palette.Palette) { applied = p }),
	})
	require.NoError(t, m.SetCurrentStyle("beta"))

	m.UpdateApplicationPaletteColors()
	assert.Equal(t, "#abcdef", applied.Hex(palette.RolePrimary))
	assert.False(t, applied.Color(palette.RoleBackground).Valid)
	assert.Equal(t, NoError, m.ErrorKind())

	p := m.GenerateThemePalette()
	assert.Equal(t, "#abcdef", p.Hex(palette.RolePrimary))
}

func TestPaletteWithoutStyle(t *testing.T) {
	m := newManager(t, Options{})
	m.SetThemeVariableValue("primary", "#123456")

	p := m.GenerateThemePalette()
	assert.Equal(t, "#123456", p.Hex(palette.RolePrimary))
	assert.Contains(t, p.Missing(), palette.RoleBackground)
}

func TestAccessors(t *testing.T) {
	m := newManager(t, Options{OutputDir: "/out"})
	assert.Empty(t, m.CurrentStylePath())
	assert.Empty(t, m.Path(catalog.ThemesLocation))
	assert.True(t, m.StyleIcon().IsEmpty())
	assert.Empty(t, m.StyleParameters().GetFields())
	assert.Empty(t, m.CurrentStyleOutputPath())

	styles, err := m.Styles()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "delta", "epsilon", "gamma", "omega"}, styles)
	assert.Equal(t, "/styles", m.StylesDirPath())

	require.NoError(t, m.SetCurrentStyle("alpha"))
	assert.Equal(t, filepath.Join("/styles", "alpha"), m.CurrentStylePath())
	assert.Equal(t, filepath.Join("/styles", "alpha", "resources"), m.Path(catalog.ResourceTemplatesLocation))
	assert.Equal(t, filepath.Join("/out", "alpha"), m.CurrentStyleOutputPath())
	assert.Equal(t, Icon{Name: "icon.svg", Data: "<svg/>"}, m.StyleIcon())

	color := m.ThemeColor("primary")
	require.True(t, color.Valid)
	assert.Equal(t, "#112233", color.Hex())
	assert.False(t, m.ThemeColor("size").Valid)
	assert.Equal(t, "12", m.ThemeVariables()["size"])

	m.SetOutputDirPath("/elsewhere")
	assert.Equal(t, "/elsewhere", m.OutputDirPath())
}

func TestStyleParametersIsACopy(t *testing.T) {
	m := newManager(t, Options{})
	require.NoError(t, m.SetCurrentStyle("alpha"))

	params := m.StyleParameters()
	assert.Equal(t, "dark", params.GetFields()["default_theme"].GetStringValue())
	delete(params.Fields, "default_theme")

	assert.Equal(t, "dark", m.StyleParameters().GetFields()["default_theme"].GetStringValue())
}

func TestSetCatalogDropsSelection(t *testing.T) {
	m := newManager(t, Options{})
	require.NoError(t, m.SetCurrentStyle("alpha"))
	m.SetThemeVariableValue("accent", "#ff0000")

	m.SetStylesDirPath(t.TempDir())

	assert.Empty(t, m.CurrentStyle())
	assert.Empty(t, m.CurrentTheme())
	assert.Empty(t, m.ThemeVariableValue("primary"))
	assert.Equal(t, "#ff0000", m.ThemeVariableValue("accent"))
	styles, err := m.Styles()
	require.NoError(t, err)
	assert.Empty(t, styles)
}

func TestOutputNames(t *testing.T) {
	m := newManager(t, Options{})
	assert.Empty(t, m.StylesheetOutputName())
	assert.Nil(t, m.ResourceNames())

	require.NoError(t, m.SetCurrentStyle("alpha"))
	assert.Equal(t, "alpha.css", m.StylesheetOutputName())
	assert.Equal(t, []string{"a.svg", "b.svg"}, m.ResourceNames())
}
