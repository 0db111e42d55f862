// Package palette derives semantic color roles from theme variables.
package palette

import (
	"github.com/opencode-ai/themekit/internal/variables"
)

// Role is a semantic color slot.
type Role string

const (
	RoleBackground Role = "background"
	RoleSurface    Role = "surface"
	RoleText       Role = "text"
	RoleTextMuted  Role = "text_muted"
	RoleBorder     Role = "border"
	RolePrimary    Role = "primary"
	RoleFocus      Role = "focus"
	RoleSuccess    Role = "success"
	RoleWarning    Role = "warning"
	RoleError      Role = "error"
	RoleInfo       Role = "info"
)

// Roles lists every role in display order.
var Roles = []Role{
	RoleBackground,
	RoleSurface,
	RoleText,
	RoleTextMuted,
	RoleBorder,
	RolePrimary,
	RoleFocus,
	RoleSuccess,
	RoleWarning,
	RoleError,
	RoleInfo,
}

// Mapping assigns a theme variable id to each role.
type Mapping map[Role]string

// DefaultMapping maps each role to the variable of the same name.
func DefaultMapping() Mapping {
	m := make(Mapping, len(Roles))
	for _, role := range Roles {
		m[role] = string(role)
	}
	return m
}

// Merge returns a copy of m with entries from override replacing its own.
// Unknown roles in override are ignored.
func (m Mapping) Merge(override map[string]string) Mapping {
	out := make(Mapping, len(m))
	for role, id := range m {
		out[role] = id
	}
	for _, role := range Roles {
		if id, ok := override[string(role)]; ok && id != "" {
			out[role] = id
		}
	}
	return out
}

// ColorResolver resolves a variable id to a color.
type ColorResolver interface {
	Color(id string) variables.Color
}

// Palette holds one color per role. Roles whose variable is missing or not
// a color hold an invalid color.
type Palette struct {
	colors map[Role]variables.Color
}

// Derive resolves every role of mapping through r.
func Derive(r ColorResolver, mapping Mapping) Palette {
	if mapping == nil {
		mapping = DefaultMapping()
	}
	p := Palette{colors: make(map[Role]variables.Color, len(Roles))}
	for _, role := range Roles {
		id, ok := mapping[role]
		if !ok {
			p.colors[role] = variables.Color{}
			continue
		}
		p.colors[role] = r.Color(id)
	}
	return p
}

// Color returns the color of role; invalid when unresolved.
func (p Palette) Color(role Role) variables.Color {
	return p.colors[role]
}

// Hex returns the color of role as hex, or "" when unresolved.
func (p Palette) Hex(role Role) string {
	return p.colors[role].Hex()
}

// Missing returns the roles that did not resolve to a valid color.
func (p Palette) Missing() []Role {
	var missing []Role
	for _, role := range Roles {
		if !p.colors[role].Valid {
			missing = append(missing, role)
		}
	}
	return missing
}

// Sink applies a derived palette to the running application.
type Sink interface {
	ApplyPalette(Palette)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Palette)

// ApplyPalette implements Sink.
func (f SinkFunc) ApplyPalette(p Palette) {
	f(p)
}
