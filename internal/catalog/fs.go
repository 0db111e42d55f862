package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

var themeExtensions = []string{".yaml", ".yml", ".json"}

// FS is a Catalog backed by a file system laid out as
// <style>/style.yaml, <style>/themes/<theme>.yaml, <style>/resources/...
type FS struct {
	fsys fs.FS
	root string
}

// NewFS returns a catalog over fsys. root is only used for display and
// path resolution.
func NewFS(fsys fs.FS, root string) *FS {
	return &FS{fsys: fsys, root: root}
}

// NewDir returns a catalog over a directory on disk.
func NewDir(dir string) *FS {
	return NewFS(os.DirFS(dir), dir)
}

// Root implements Catalog.
func (c *FS) Root() string {
	return c.root
}

// Styles implements Catalog.
func (c *FS) Styles() ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read styles dir %s: %w", c.root, err)
	}

	styles := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := fs.Stat(c.fsys, path.Join(entry.Name(), DescriptorFile)); err != nil {
			continue
		}
		styles = append(styles, entry.Name())
	}
	sort.Strings(styles)
	return styles, nil
}

func (c *FS) hasStyle(style string) bool {
	if style == "" || !fs.ValidPath(style) || strings.Contains(style, "/") {
		return false
	}
	_, err := fs.Stat(c.fsys, path.Join(style, DescriptorFile))
	return err == nil
}

// Themes implements Catalog.
func (c *FS) Themes(style string) ([]string, error) {
	if !c.hasStyle(style) {
		return nil, fmt.Errorf("%w: %s", ErrStyleNotFound, style)
	}

	entries, err := fs.ReadDir(c.fsys, path.Join(style, ThemesLocation.String()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read themes of %s: %w", style, err)
	}

	themes := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if !isThemeExtension(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		themes = append(themes, name)
	}
	sort.Strings(themes)
	return themes, nil
}

func isThemeExtension(ext string) bool {
	for _, candidate := range themeExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// Location implements Catalog.
func (c *FS) Location(style string, loc Location) string {
	return filepath.Join(c.root, style, loc.String())
}

// Descriptor implements Catalog.
func (c *FS) Descriptor(style string) (*structpb.Struct, error) {
	if !c.hasStyle(style) {
		return nil, fmt.Errorf("%w: %s", ErrStyleNotFound, style)
	}

	name := path.Join(style, DescriptorFile)
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read style descriptor %s: %w", name, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &DocumentError{Path: name, Err: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	doc, err := structpb.NewStruct(raw)
	if err != nil {
		return nil, &DocumentError{Path: name, Err: err}
	}
	return doc, nil
}

// ThemeDocument implements Catalog.
func (c *FS) ThemeDocument(style, theme string) (*ThemeDocument, error) {
	if !c.hasStyle(style) {
		return nil, fmt.Errorf("%w: %s", ErrStyleNotFound, style)
	}
	if theme == "" || strings.ContainsAny(theme, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, theme)
	}

	dir := path.Join(style, ThemesLocation.String())
	for _, ext := range themeExtensions {
		name := path.Join(dir, theme+ext)
		data, err := fs.ReadFile(c.fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read theme %s: %w", name, err)
		}
		return parseThemeDocument(name, theme, data)
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrThemeNotFound, style, theme)
}

func parseThemeDocument(name, theme string, data []byte) (*ThemeDocument, error) {
	var doc ThemeDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DocumentError{Path: name, Err: err}
	}

	doc.Name = strings.TrimSpace(doc.Name)
	if doc.Name == "" {
		doc.Name = theme
	}
	for id := range doc.Colors {
		if _, dup := doc.Variables[id]; dup {
			return nil, &DocumentError{Path: name, Err: fmt.Errorf("variable %q declared as color and plain variable", id)}
		}
	}
	return &doc, nil
}

// ReadFile implements Catalog.
func (c *FS) ReadFile(style, name string) (string, error) {
	if !c.hasStyle(style) {
		return "", fmt.Errorf("%w: %s", ErrStyleNotFound, style)
	}
	full := path.Join(style, filepath.ToSlash(name))
	if !fs.ValidPath(full) || !strings.HasPrefix(full, style+"/") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	data, err := fs.ReadFile(c.fsys, full)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", full, err)
	}
	return string(data), nil
}
