// Package catalog locates styles and themes and supplies their documents
// and template text.
package catalog

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

var (
	// ErrStyleNotFound is returned when a style is not present in a catalog.
	ErrStyleNotFound = errors.New("style not found")
	// ErrThemeNotFound is returned when a style has no theme of that name.
	ErrThemeNotFound = errors.New("theme not found")
)

// Location names a per-style resource directory.
type Location int

const (
	ThemesLocation Location = iota
	ResourceTemplatesLocation
	FontsLocation
)

func (l Location) String() string {
	switch l {
	case ThemesLocation:
		return "themes"
	case ResourceTemplatesLocation:
		return "resources"
	case FontsLocation:
		return "fonts"
	default:
		return fmt.Sprintf("location(%d)", int(l))
	}
}

// DescriptorFile is the style descriptor file name inside a style directory.
const DescriptorFile = "style.yaml"

// Catalog supplies styles, themes and their raw documents.
type Catalog interface {
	// Root returns the directory the catalog reads from, for display.
	Root() string
	// Styles lists style identifiers in sorted order.
	Styles() ([]string, error)
	// Themes lists theme identifiers of a style in sorted order.
	Themes(style string) ([]string, error)
	// Location resolves a per-style directory.
	Location(style string, loc Location) string
	// Descriptor returns the style descriptor as a generic document.
	Descriptor(style string) (*structpb.Struct, error)
	// ThemeDocument returns the variables declared by a theme.
	ThemeDocument(style, theme string) (*ThemeDocument, error)
	// ReadFile returns the text of a file relative to the style directory.
	ReadFile(style, name string) (string, error)
}

// ThemeDocument is the parsed content of a theme file.
type ThemeDocument struct {
	Name      string            `yaml:"name"`
	Colors    map[string]string `yaml:"colors"`
	Variables map[string]string `yaml:"variables"`
}

// DocumentError describes a malformed style or theme document.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("malformed document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
