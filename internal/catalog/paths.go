package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/types/known/structpb"
)

// SearchPaths returns style search directories in precedence order.
func SearchPaths(projectDir string) []string {
	paths := make([]string, 0, 3)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".themekit", "styles"))
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "themekit", "styles"))
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "themekit", "styles"))
	return paths
}

// Open returns a catalog over dirs with first-hit precedence, falling back
// to the builtin styles. Missing directories are skipped.
func Open(dirs ...string) *Layered {
	layers := make([]Catalog, 0, len(dirs)+1)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		layers = append(layers, NewDir(dir))
	}
	layers = append(layers, Builtin())
	return NewLayered(layers...)
}

// Layered resolves each style from the first catalog that provides it.
type Layered struct {
	layers []Catalog
}

// NewLayered returns a catalog over layers in precedence order.
func NewLayered(layers ...Catalog) *Layered {
	return &Layered{layers: layers}
}

// Root implements Catalog with the root of the highest precedence layer.
func (l *Layered) Root() string {
	if len(l.layers) == 0 {
		return ""
	}
	return l.layers[0].Root()
}

// Styles implements Catalog.
func (l *Layered) Styles() ([]string, error) {
	seen := make(map[string]struct{})
	order := make([]string, 0)

	for _, layer := range l.layers {
		styles, err := layer.Styles()
		if err != nil {
			return nil, err
		}
		for _, style := range styles {
			if _, exists := seen[style]; exists {
				continue
			}
			seen[style] = struct{}{}
			order = append(order, style)
		}
	}

	return order, nil
}

func (l *Layered) owner(style string) (Catalog, error) {
	for _, layer := range l.layers {
		styles, err := layer.Styles()
		if err != nil {
			return nil, err
		}
		for _, candidate := range styles {
			if candidate == style {
				return layer, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStyleNotFound, style)
}

// Themes implements Catalog.
func (l *Layered) Themes(style string) ([]string, error) {
	layer, err := l.owner(style)
	if err != nil {
		return nil, err
	}
	return layer.Themes(style)
}

// Location implements Catalog.
func (l *Layered) Location(style string, loc Location) string {
	layer, err := l.owner(style)
	if err != nil {
		return ""
	}
	return layer.Location(style, loc)
}

// Descriptor implements Catalog.
func (l *Layered) Descriptor(style string) (*structpb.Struct, error) {
	layer, err := l.owner(style)
	if err != nil {
		return nil, err
	}
	return layer.Descriptor(style)
}

// ThemeDocument implements Catalog.
func (l *Layered) ThemeDocument(style, theme string) (*ThemeDocument, error) {
	layer, err := l.owner(style)
	if err != nil {
		return nil, err
	}
	return layer.ThemeDocument(style, theme)
}

// ReadFile implements Catalog.
func (l *Layered) ReadFile(style, name string) (string, error) {
	layer, err := l.owner(style)
	if err != nil {
		return "", err
	}
	return layer.ReadFile(style, name)
}

// StyleRoot returns the root of the layer providing style, or "".
func (l *Layered) StyleRoot(style string) string {
	layer, err := l.owner(style)
	if err != nil {
		return ""
	}
	return layer.Root()
}
