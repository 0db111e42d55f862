package catalog

import (
	"embed"
	"io/fs"
)

//go:embed builtin
var builtinFS embed.FS

// BuiltinRoot is the display root of the bundled styles.
const BuiltinRoot = "builtin"

// Builtin returns the catalog of styles bundled with themekit.
func Builtin() *FS {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails on an invalid directory name.
		panic(err)
	}
	return NewFS(sub, BuiltinRoot)
}
