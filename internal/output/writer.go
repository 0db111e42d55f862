// Package output writes generated stylesheets and resources to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileMode is the permission of generated files.
const DefaultFileMode os.FileMode = 0o644

// Writer writes generated files into a directory. It implements both
// resources.Materializer and templates.StylesheetWriter.
type Writer struct {
	Dir string

	// Mode is applied to every written file; zero means DefaultFileMode.
	Mode os.FileMode
}

// NewWriter returns a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Mode: DefaultFileMode}
}

// Materialize writes a resource file.
func (w *Writer) Materialize(name, text string) error {
	return w.write(name, text)
}

// WriteStylesheet writes a stylesheet file.
func (w *Writer) WriteStylesheet(name, text string) error {
	return w.write(name, text)
}

// Path returns the absolute destination of name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.Dir, filepath.FromSlash(name))
}

func (w *Writer) write(name, text string) error {
	if strings.TrimSpace(w.Dir) == "" {
		return fmt.Errorf("output directory is required")
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || filepath.IsAbs(clean) || clean == "." || escapes(clean) {
		return fmt.Errorf("invalid output name %q", name)
	}

	path := filepath.Join(w.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", filepath.Dir(path), err)
	}

	// Write to a temp file first so readers never see a half-written file.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	// CreateTemp uses 0600 and Rename keeps it.
	if err := tmp.Chmod(w.mode()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func (w *Writer) mode() os.FileMode {
	if w.Mode == 0 {
		return DefaultFileMode
	}
	return w.Mode.Perm()
}

// escapes reports whether a cleaned relative name leaves the directory.
// Names that merely start with dots, like "..icons.svg", stay inside.
func escapes(clean string) bool {
	return clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
