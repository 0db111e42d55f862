package palette

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from a palette.
type Styles struct {
	Palette Palette
	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Panel   lipgloss.Style
	Border  lipgloss.Style
	Focus   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// BuildStyles converts a palette into lipgloss styles.
func BuildStyles(p Palette) Styles {
	color := func(role Role) lipgloss.Color {
		return lipgloss.Color(p.HexOrFallback(role))
	}

	return Styles{
		Palette: p,
		Title:   lipgloss.NewStyle().Foreground(color(RoleText)).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(color(RoleText)),
		Muted:   lipgloss.NewStyle().Foreground(color(RoleTextMuted)),
		Accent:  lipgloss.NewStyle().Foreground(color(RolePrimary)),
		Panel:   lipgloss.NewStyle().Foreground(color(RoleText)).Background(color(RoleSurface)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(color(RoleBorder)),
		Border:  lipgloss.NewStyle().Foreground(color(RoleBorder)),
		Focus:   lipgloss.NewStyle().Foreground(color(RoleFocus)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(color(RoleSuccess)),
		Warning: lipgloss.NewStyle().Foreground(color(RoleWarning)),
		Error:   lipgloss.NewStyle().Foreground(color(RoleError)),
		Info:    lipgloss.NewStyle().Foreground(color(RoleInfo)),
	}
}

// Swatch renders a small block filled with the role's color.
func (s Styles) Swatch(role Role) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.Palette.HexOrFallback(role))).
		Render("    ")
}

// LipglossSink keeps terminal styles in sync with the applied palette.
// The zero value is ready to use.
type LipglossSink struct {
	styles  Styles
	applied bool
}

// ApplyPalette implements Sink.
func (s *LipglossSink) ApplyPalette(p Palette) {
	s.styles = BuildStyles(p)
	s.applied = true
}

// Styles returns the styles of the last applied palette, or styles built
// from the fallback colors when nothing has been applied.
func (s *LipglossSink) Styles() Styles {
	if !s.applied {
		return BuildStyles(Palette{})
	}
	return s.styles
}
