// Package style selects styles and themes, merges theme variables with
// caller overrides, and regenerates palette, resources and stylesheet.
package style

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/opencode-ai/themekit/internal/catalog"
	"github.com/opencode-ai/themekit/internal/logging"
	"github.com/opencode-ai/themekit/internal/palette"
	"github.com/opencode-ai/themekit/internal/resources"
	"github.com/opencode-ai/themekit/internal/templates"
	"github.com/opencode-ai/themekit/internal/variables"
)

// Options configures a Manager.
type Options struct {
	// Catalog supplies styles. Required.
	Catalog catalog.Catalog

	// OutputDir is where generated files go, one subdirectory per style.
	OutputDir string

	// Materializer receives generated resources. Defaults to a file writer
	// under the current style's output path when OutputDir is set.
	Materializer resources.Materializer

	// Writer persists generated stylesheets. Defaults like Materializer.
	Writer templates.StylesheetWriter

	// PaletteSink receives the derived palette on every update.
	PaletteSink palette.Sink
}

// Icon is the icon shipped with a style.
type Icon struct {
	Name string
	Data string
}

// IsEmpty reports whether the style provides no icon.
func (i Icon) IsEmpty() bool {
	return i.Data == ""
}

// loadedStyle is immutable for as long as it is selected.
type loadedStyle struct {
	name       string
	doc        *structpb.Struct
	desc       descriptor
	themes     []string
	stylesheet string
	resources  []templates.Template
	icon       Icon
}

func (s *loadedStyle) hasTheme(name string) bool {
	for _, theme := range s.themes {
		if theme == name {
			return true
		}
	}
	return false
}

// Manager owns the current style and theme selection, the variable store
// and the error state. It is not safe for concurrent use.
type Manager struct {
	catalog      catalog.Catalog
	outputDir    string
	materializer resources.Materializer
	writer       templates.StylesheetWriter
	sink         palette.Sink
	logger       zerolog.Logger

	style      *loadedStyle
	theme      string
	store      *variables.Store
	stylesheet string

	errKind ErrorKind
	err     error

	observers []*subscription
}

// NewManager creates a manager with no style selected.
func NewManager(opts Options) (*Manager, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	return &Manager{
		catalog:      opts.Catalog,
		outputDir:    opts.OutputDir,
		materializer: opts.Materializer,
		writer:       opts.Writer,
		sink:         opts.PaletteSink,
		logger:       logging.Component("style"),
		store:        variables.NewStore(),
	}, nil
}

func (m *Manager) resetError() {
	m.errKind = NoError
	m.err = nil
}

func (m *Manager) fail(kind ErrorKind, err error) error {
	m.errKind = kind
	m.err = err
	m.logger.Warn().Err(err).Str("kind", kind.String()).Msg("style operation failed")
	return &Error{Kind: kind, Err: err}
}

// ErrorKind returns the kind of the last failure, or NoError.
func (m *Manager) ErrorKind() ErrorKind {
	return m.errKind
}

// ErrorString describes the last failure, or "" when there is none.
func (m *Manager) ErrorString() string {
	if m.err == nil {
		return ""
	}
	return m.err.Error()
}

// Err returns the last failure as an *Error, or nil.
func (m *Manager) Err() error {
	if m.errKind == NoError {
		return nil
	}
	return &Error{Kind: m.errKind, Err: m.err}
}

// SetStylesDirPath switches to the styles below dir. The current selection
// is dropped; overrides are kept.
func (m *Manager) SetStylesDirPath(dir string) {
	m.SetCatalog(catalog.NewDir(dir))
}

// SetCatalog replaces the style catalog and drops the current selection.
func (m *Manager) SetCatalog(c catalog.Catalog) {
	m.catalog = c
	m.style = nil
	m.theme = ""
	m.stylesheet = ""
	m.store.LoadTheme(nil, nil)
	m.resetError()
}

// StylesDirPath returns the root of the style catalog.
func (m *Manager) StylesDirPath() string {
	return m.catalog.Root()
}

// Styles lists the available styles.
func (m *Manager) Styles() ([]string, error) {
	return m.catalog.Styles()
}

// CurrentStyle returns the selected style, or "".
func (m *Manager) CurrentStyle() string {
	if m.style == nil {
		return ""
	}
	return m.style.name
}

// CurrentStylePath returns the directory of the selected style, or "".
func (m *Manager) CurrentStylePath() string {
	if m.style == nil {
		return ""
	}
	return filepath.Dir(m.catalog.Location(m.style.name, catalog.ThemesLocation))
}

// Path resolves a location of the selected style, or "".
func (m *Manager) Path(loc catalog.Location) string {
	if m.style == nil {
		return ""
	}
	return m.catalog.Location(m.style.name, loc)
}

// Themes lists the themes of the selected style.
func (m *Manager) Themes() []string {
	if m.style == nil {
		return nil
	}
	out := make([]string, len(m.style.themes))
	copy(out, m.style.themes)
	return out
}

// CurrentTheme returns the selected theme, or "".
func (m *Manager) CurrentTheme() string {
	return m.theme
}

// OutputDirPath returns the root output directory.
func (m *Manager) OutputDirPath() string {
	return m.outputDir
}

// SetOutputDirPath changes the root output directory.
func (m *Manager) SetOutputDirPath(dir string) {
	m.outputDir = dir
}

// CurrentStyleOutputPath returns OutputDirPath joined with the style name,
// or "" when either is unset.
func (m *Manager) CurrentStyleOutputPath() string {
	if m.outputDir == "" || m.style == nil {
		return ""
	}
	return filepath.Join(m.outputDir, m.style.name)
}

// StyleSheet returns the last generated stylesheet.
func (m *Manager) StyleSheet() string {
	return m.stylesheet
}

// StylesheetOutputName returns the file name the stylesheet is exported
// as, or "".
func (m *Manager) StylesheetOutputName() string {
	if m.style == nil {
		return ""
	}
	return m.style.desc.StylesheetOutput
}

// ResourceNames lists the resource templates of the selected style in
// generation order.
func (m *Manager) ResourceNames() []string {
	if m.style == nil {
		return nil
	}
	names := make([]string, len(m.style.resources))
	for i, tmpl := range m.style.resources {
		names[i] = tmpl.Name
	}
	return names
}

// StyleIcon returns the icon of the selected style; empty when the style
// has none.
func (m *Manager) StyleIcon() Icon {
	if m.style == nil {
		return Icon{}
	}
	return m.style.icon
}

// StyleParameters returns a copy of the selected style's descriptor.
func (m *Manager) StyleParameters() *structpb.Struct {
	if m.style == nil {
		return &structpb.Struct{}
	}
	return proto.Clone(m.style.doc).(*structpb.Struct)
}

// ThemeVariableValue returns the merged value of id, or "".
func (m *Manager) ThemeVariableValue(id string) string {
	return m.store.Value(id)
}

// ThemeVariables returns the merged variable view.
func (m *Manager) ThemeVariables() variables.MapView {
	return m.store.Snapshot()
}

// SetThemeVariableValue adds or overwrites a variable. Call
// UpdateStylesheet to apply it.
func (m *Manager) SetThemeVariableValue(id, value string) {
	m.store.SetOverride(id, value)
}

// ClearThemeVariableValues drops every value set with SetThemeVariableValue.
func (m *Manager) ClearThemeVariableValues() {
	m.store.ClearOverrides()
}

// ThemeColor parses the merged value of id as a color.
func (m *Manager) ThemeColor(id string) variables.Color {
	return m.store.Color(id)
}

// ThemeColorVariables returns the merged color variables of the theme.
func (m *Manager) ThemeColorVariables() map[string]string {
	return m.store.ColorVariables()
}

// SetCurrentStyle selects style name and its default theme. It does not
// regenerate anything.
func (m *Manager) SetCurrentStyle(name string) error {
	m.resetError()

	style, err := m.loadStyle(name)
	if err != nil {
		return m.fail(StyleDescriptorError, err)
	}

	themeName := style.desc.DefaultTheme
	if themeName == "" && len(style.themes) > 0 {
		themeName = style.themes[0]
	}

	var values map[string]string
	var colorIDs []string
	if themeName != "" {
		values, colorIDs, err = m.loadTheme(style, themeName)
		if err != nil {
			return m.fail(ThemeLoadError, err)
		}
	}

	m.style = style
	m.theme = themeName
	m.store.LoadTheme(values, colorIDs)

	m.logger.Info().Str("style", name).Str("theme", themeName).Msg("style selected")
	m.emit(Event{Type: EventStyleChanged, Name: name})
	return nil
}

// SetCurrentTheme selects a theme of the current style. Overrides are
// kept. It does not regenerate anything.
func (m *Manager) SetCurrentTheme(name string) error {
	m.resetError()

	if m.style == nil {
		return m.fail(ThemeLoadError, ErrNoStyle)
	}

	values, colorIDs, err := m.loadTheme(m.style, name)
	if err != nil {
		return m.fail(ThemeLoadError, err)
	}

	m.theme = name
	m.store.LoadTheme(values, colorIDs)

	m.logger.Info().Str("style", m.style.name).Str("theme", name).Msg("theme selected")
	m.emit(Event{Type: EventThemeChanged, Name: name})
	return nil
}

func (m *Manager) loadStyle(name string) (*loadedStyle, error) {
	styles, err := m.catalog.Styles()
	if err != nil {
		return nil, err
	}
	known := false
	for _, candidate := range styles {
		if candidate == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}

	doc, err := m.catalog.Descriptor(name)
	if err != nil {
		return nil, err
	}
	desc, err := parseDescriptor(name, doc)
	if err != nil {
		return nil, err
	}

	themes, err := m.catalog.Themes(name)
	if err != nil {
		return nil, err
	}

	style := &loadedStyle{
		name:   name,
		doc:    doc,
		desc:   desc,
		themes: themes,
	}

	if desc.DefaultTheme != "" && !style.hasTheme(desc.DefaultTheme) {
		return nil, &DescriptorError{Field: "default_theme", Message: fmt.Sprintf("theme %q does not exist", desc.DefaultTheme)}
	}

	if desc.Stylesheet != "" {
		style.stylesheet, err = m.catalog.ReadFile(name, desc.Stylesheet)
		if err != nil {
			return nil, fmt.Errorf("read stylesheet template: %w", err)
		}
	}

	for _, resource := range desc.Resources {
		text, err := m.catalog.ReadFile(name, path.Join(catalog.ResourceTemplatesLocation.String(), resource))
		if err != nil {
			return nil, fmt.Errorf("read resource template: %w", err)
		}
		style.resources = append(style.resources, templates.Template{
			Name:   resource,
			Text:   text,
			Source: m.catalog.Location(name, catalog.ResourceTemplatesLocation),
		})
	}

	if desc.Icon != "" {
		data, err := m.catalog.ReadFile(name, desc.Icon)
		if err != nil {
			m.logger.Warn().Err(err).Str("style", name).Msg("style icon not readable")
		} else {
			style.icon = Icon{Name: desc.Icon, Data: data}
		}
	}

	return style, nil
}

func (m *Manager) loadTheme(style *loadedStyle, name string) (map[string]string, []string, error) {
	if !style.hasTheme(name) {
		return nil, nil, fmt.Errorf("%w: %q is not a theme of style %q", ErrUnknownTheme, name, style.name)
	}

	doc, err := m.catalog.ThemeDocument(style.name, name)
	if err != nil {
		if errors.Is(err, catalog.ErrThemeNotFound) {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnknownTheme, err)
		}
		return nil, nil, err
	}

	values := make(map[string]string, len(doc.Colors)+len(doc.Variables))
	colorIDs := make([]string, 0, len(doc.Colors))
	for id, value := range doc.Variables {
		values[id] = value
	}
	for id, value := range doc.Colors {
		if _, dup := values[id]; dup {
			return nil, nil, fmt.Errorf("theme %q declares %q twice", name, id)
		}
		values[id] = value
		colorIDs = append(colorIDs, id)
	}
	return values, colorIDs, nil
}
