// Package templates substitutes {{variable}} placeholders in stylesheet and
// resource templates.
package templates

import (
	"regexp"
)

// Template is a named piece of template text.
type Template struct {
	Name   string // output name, e.g. "checkbox.svg"
	Text   string
	Source string // file path or "builtin"
}

// placeholderPattern matches {{id}} with optional inner padding. Ids may
// contain any character except braces and whitespace.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// Placeholders returns the ids referenced by text in first-occurrence order.
func Placeholders(text string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(text, -1)
	ids := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		ids = append(ids, m[1])
	}
	return ids
}
