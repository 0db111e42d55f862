package palette

// Fallback colors used by LipglossSink for roles a theme does not define.
var fallback = map[Role]string{
	RoleBackground: "#0B0F14",
	RoleSurface:    "#121821",
	RoleText:       "#E6EDF3",
	RoleTextMuted:  "#8B9AAE",
	RoleBorder:     "#223043",
	RolePrimary:    "#5B8DEF",
	RoleFocus:      "#7AA2F7",
	RoleSuccess:    "#3FB950",
	RoleWarning:    "#D29922",
	RoleError:      "#F85149",
	RoleInfo:       "#58A6FF",
}

// HexOrFallback returns the hex color of role, or the builtin fallback when
// the palette does not resolve it.
func (p Palette) HexOrFallback(role Role) string {
	if hex := p.Hex(role); hex != "" {
		return hex
	}
	return fallback[role]
}
