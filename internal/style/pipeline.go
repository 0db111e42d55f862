package style

import (
	"errors"

	"github.com/opencode-ai/themekit/internal/output"
	"github.com/opencode-ai/themekit/internal/palette"
	"github.com/opencode-ai/themekit/internal/resources"
	"github.com/opencode-ai/themekit/internal/templates"
)

// UpdateStylesheet regenerates everything for the current selection:
// palette, then resources, then the stylesheet. The first failing stage
// stops the run. Resources written before a failure stay on disk.
func (m *Manager) UpdateStylesheet() error {
	m.resetError()
	if m.style == nil {
		return m.fail(StyleDescriptorError, ErrNoStyle)
	}

	m.applyPalette()
	if err := m.generateResources(); err != nil {
		return err
	}

	outputFile := ""
	if m.stylesheetWriter() != nil {
		outputFile = m.style.desc.StylesheetOutput
	}
	text, err := m.processStylesheet(m.style.stylesheet, outputFile)
	if err != nil {
		return err
	}

	m.stylesheet = text
	m.logger.Debug().Str("style", m.style.name).Str("theme", m.theme).Int("bytes", len(text)).Msg("stylesheet updated")
	m.emit(Event{Type: EventStylesheetChanged})
	return nil
}

// ProcessStyleTemplate updates the palette and regenerates resources but
// leaves the stylesheet alone.
func (m *Manager) ProcessStyleTemplate() error {
	m.resetError()
	if m.style == nil {
		return m.fail(StyleDescriptorError, ErrNoStyle)
	}

	m.applyPalette()
	return m.generateResources()
}

// GenerateResources regenerates the resources of the current style.
func (m *Manager) GenerateResources() error {
	m.resetError()
	if m.style == nil {
		return m.fail(StyleDescriptorError, ErrNoStyle)
	}
	return m.generateResources()
}

// ProcessStylesheetTemplate substitutes text against the merged variables
// and, when outputFile is set, writes the result to the current style's
// output directory. The current stylesheet is not changed.
func (m *Manager) ProcessStylesheetTemplate(text, outputFile string) (string, error) {
	m.resetError()
	return m.processStylesheet(text, outputFile)
}

// UpdateApplicationPaletteColors derives the palette and hands it to the
// palette sink. Roles that do not resolve get an invalid color.
func (m *Manager) UpdateApplicationPaletteColors() {
	m.resetError()
	m.applyPalette()
}

// GenerateThemePalette derives the palette without applying it.
func (m *Manager) GenerateThemePalette() palette.Palette {
	mapping := palette.DefaultMapping()
	if m.style != nil {
		mapping = mapping.Merge(m.style.desc.Palette)
	}
	return palette.Derive(m.store, mapping)
}

func (m *Manager) applyPalette() {
	p := m.GenerateThemePalette()
	if missing := p.Missing(); len(missing) > 0 {
		m.logger.Debug().Int("missing", len(missing)).Msg("palette roles without a color")
	}
	if m.sink != nil {
		m.sink.ApplyPalette(p)
	}
}

func (m *Manager) generateResources() error {
	gen := resources.Generator{
		Materializer: m.resourceMaterializer(),
		Logger:       m.logger,
	}
	result, err := gen.Generate(m.style.resources, m.store)
	if err != nil {
		if len(result.Materialized) > 0 {
			m.logger.Warn().Strs("written", result.Materialized).Msg("resources left from failed generation")
		}
		return m.fail(ResourceGenerationError, err)
	}
	return nil
}

func (m *Manager) processStylesheet(text, outputFile string) (string, error) {
	proc := templates.Processor{Writer: m.stylesheetWriter()}
	out, err := proc.Process(text, m.store, outputFile)
	if err != nil {
		var exportErr *templates.ExportError
		if errors.As(err, &exportErr) {
			return "", m.fail(ExportError, err)
		}
		return "", m.fail(TemplateError, err)
	}
	return out, nil
}

// defaultWriter returns a file writer for the current style, or nil when
// no output directory is configured.
func (m *Manager) defaultWriter() *output.Writer {
	dir := m.CurrentStyleOutputPath()
	if dir == "" {
		return nil
	}
	return output.NewWriter(dir)
}

func (m *Manager) resourceMaterializer() resources.Materializer {
	if m.materializer != nil {
		return m.materializer
	}
	if w := m.defaultWriter(); w != nil {
		return w
	}
	return nil
}

func (m *Manager) stylesheetWriter() templates.StylesheetWriter {
	if m.writer != nil {
		return m.writer
	}
	if w := m.defaultWriter(); w != nil {
		return w
	}
	return nil
}
