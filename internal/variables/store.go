// Package variables holds theme variables and caller overrides and merges
// them into a single lookup view.
package variables

import (
	"sort"
)

// View is a read-only variable lookup.
type View interface {
	Lookup(id string) (string, bool)
}

// ViewFunc adapts a function to View.
type ViewFunc func(id string) (string, bool)

// Lookup implements View.
func (f ViewFunc) Lookup(id string) (string, bool) {
	return f(id)
}

// MapView is a View over a plain map.
type MapView map[string]string

// Lookup implements View.
func (m MapView) Lookup(id string) (string, bool) {
	value, ok := m[id]
	return value, ok
}

// Store layers caller overrides above the active theme's variables.
// The zero value is ready to use.
type Store struct {
	theme     map[string]string
	colorIDs  map[string]struct{}
	overrides map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// LoadTheme replaces the theme layer. Overrides are left untouched.
func (s *Store) LoadTheme(values map[string]string, colorIDs []string) {
	s.theme = make(map[string]string, len(values))
	for id, value := range values {
		s.theme[id] = value
	}
	s.colorIDs = make(map[string]struct{}, len(colorIDs))
	for _, id := range colorIDs {
		s.colorIDs[id] = struct{}{}
	}
}

// SetOverride sets a caller value that shadows the theme value for id.
func (s *Store) SetOverride(id, value string) {
	if s.overrides == nil {
		s.overrides = make(map[string]string)
	}
	s.overrides[id] = value
}

// ClearOverrides drops every override.
func (s *Store) ClearOverrides() {
	s.overrides = nil
}

// Overrides returns a copy of the override layer.
func (s *Store) Overrides() map[string]string {
	out := make(map[string]string, len(s.overrides))
	for id, value := range s.overrides {
		out[id] = value
	}
	return out
}

// Lookup implements View: override first, then theme.
func (s *Store) Lookup(id string) (string, bool) {
	if value, ok := s.overrides[id]; ok {
		return value, true
	}
	value, ok := s.theme[id]
	return value, ok
}

// Value returns the merged value for id or "" when absent.
func (s *Store) Value(id string) string {
	value, _ := s.Lookup(id)
	return value
}

// IsColor reports whether id is tagged as a color by the active theme.
func (s *Store) IsColor(id string) bool {
	_, ok := s.colorIDs[id]
	return ok
}

// Color parses the merged value of id. The result is invalid when id is
// absent or its value is not a color.
func (s *Store) Color(id string) Color {
	value, ok := s.Lookup(id)
	if !ok {
		return Color{}
	}
	return ParseColor(value)
}

// ColorVariables returns the merged values of every color-tagged id.
func (s *Store) ColorVariables() map[string]string {
	out := make(map[string]string, len(s.colorIDs))
	for id := range s.colorIDs {
		if value, ok := s.Lookup(id); ok {
			out[id] = value
		}
	}
	return out
}

// IDs returns the sorted union of theme and override ids.
func (s *Store) IDs() []string {
	seen := make(map[string]struct{}, len(s.theme)+len(s.overrides))
	for id := range s.theme {
		seen[id] = struct{}{}
	}
	for id := range s.overrides {
		seen[id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns the merged view as an independent map.
func (s *Store) Snapshot() MapView {
	out := make(MapView, len(s.theme)+len(s.overrides))
	for id, value := range s.theme {
		out[id] = value
	}
	for id, value := range s.overrides {
		out[id] = value
	}
	return out
}
