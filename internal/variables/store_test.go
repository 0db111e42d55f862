package variables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_OverrideShadowsTheme(t *testing.T) {
	s := NewStore()
	s.LoadTheme(map[string]string{"primary": "#112233", "size": "12px"}, []string{"primary"})

	s.SetOverride("primary", "#ffffff")

	value, ok := s.Lookup("primary")
	require.True(t, ok)
	assert.Equal(t, "#ffffff", value)
	assert.Equal(t, "12px", s.Value("size"))
}

func TestStore_LoadThemeKeepsOverrides(t *testing.T) {
	s := NewStore()
	s.LoadTheme(map[string]string{"primary": "#112233", "secondary": "#000000"}, nil)
	s.SetOverride("accent", "#abcdef")

	s.LoadTheme(map[string]string{"primary": "#445566"}, nil)

	assert.Equal(t, "#445566", s.Value("primary"))
	assert.Equal(t, "#abcdef", s.Value("accent"))
	_, ok := s.Lookup("secondary")
	assert.False(t, ok, "old theme values must not leak into the new theme layer")
}

func TestStore_OverrideSurvivesThemeValueForSameID(t *testing.T) {
	s := NewStore()
	s.SetOverride("primary", "#ffffff")
	for _, themeValue := range []string{"#000000", "#123456", ""} {
		s.LoadTheme(map[string]string{"primary": themeValue}, []string{"primary"})
		assert.Equal(t, "#ffffff", s.Value("primary"))
	}
}

func TestStore_ClearOverrides(t *testing.T) {
	s := NewStore()
	s.LoadTheme(map[string]string{"primary": "#112233"}, nil)
	s.SetOverride("primary", "#ffffff")

	s.ClearOverrides()

	assert.Equal(t, "#112233", s.Value("primary"))
	assert.Empty(t, s.Overrides())
}

func TestStore_AbsentLookup(t *testing.T) {
	var s Store

	value, ok := s.Lookup("missing")
	assert.False(t, ok)
	assert.Empty(t, value)
	assert.False(t, s.Color("missing").Valid)
}

func TestStore_ColorVariables(t *testing.T) {
	s := NewStore()
	s.LoadTheme(map[string]string{
		"primary": "#112233",
		"text":    "#eeeeee",
		"radius":  "4px",
	}, []string{"primary", "text"})
	s.SetOverride("text", "#000000")
	s.SetOverride("extra", "#ffffff")

	assert.Equal(t, map[string]string{"primary": "#112233", "text": "#000000"}, s.ColorVariables())
	assert.True(t, s.IsColor("primary"))
	assert.False(t, s.IsColor("radius"))
}

func TestStore_IDsAreUniqueAndSorted(t *testing.T) {
	s := NewStore()
	s.LoadTheme(map[string]string{"b": "1", "a": "2"}, nil)
	s.SetOverride("a", "3")
	s.SetOverride("c", "4")

	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.Equal(t, MapView{"a": "3", "b": "1", "c": "4"}, s.Snapshot())
}

func TestStore_Color(t *testing.T) {
	s := NewStore()
	s.LoadTheme(map[string]string{"primary": "#112233", "size": "12px"}, []string{"primary"})

	c := s.Color("primary")
	require.True(t, c.Valid)
	assert.Equal(t, "#112233", c.Hex())
	assert.False(t, s.Color("size").Valid)
}
