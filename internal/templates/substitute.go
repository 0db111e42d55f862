package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opencode-ai/themekit/internal/variables"
)

// StylesheetWriter persists generated stylesheet text.
type StylesheetWriter interface {
	WriteStylesheet(name, text string) error
}

// UnresolvedError reports placeholders with no value in the variable view.
type UnresolvedError struct {
	Template string
	IDs      []string
}

func (e *UnresolvedError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("unresolved template variables: %s", strings.Join(e.IDs, ", "))
	}
	return fmt.Sprintf("template %q: unresolved variables: %s", e.Template, strings.Join(e.IDs, ", "))
}

// ExportError reports a failure to persist a substituted template.
type ExportError struct {
	File string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.File, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// Substitute replaces every placeholder in text with its value from view.
// When any id cannot be resolved the output is empty and the sorted,
// de-duplicated ids are returned.
func Substitute(text string, view variables.View) (string, []string) {
	var missing map[string]struct{}
	out := placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		id := placeholderPattern.FindStringSubmatch(token)[1]
		value, ok := view.Lookup(id)
		if !ok {
			if missing == nil {
				missing = make(map[string]struct{})
			}
			missing[id] = struct{}{}
			return token
		}
		return value
	})

	if len(missing) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(missing))
	for id := range missing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return "", ids
}

// Render substitutes tmpl and returns an *UnresolvedError naming the
// missing ids on failure.
func Render(tmpl Template, view variables.View) (string, error) {
	out, missing := Substitute(tmpl.Text, view)
	if len(missing) > 0 {
		return "", &UnresolvedError{Template: tmpl.Name, IDs: missing}
	}
	return out, nil
}

// Processor substitutes templates and optionally persists the result.
type Processor struct {
	Writer StylesheetWriter
}

// Process substitutes text against view. When outputFile is set the result
// is written through the processor's writer; write failures are returned as
// *ExportError and substitution failures as *UnresolvedError.
func (p Processor) Process(text string, view variables.View, outputFile string) (string, error) {
	out, err := Render(Template{Name: outputFile, Text: text}, view)
	if err != nil {
		return "", err
	}

	if outputFile == "" {
		return out, nil
	}
	if p.Writer == nil {
		return "", &ExportError{File: outputFile, Err: fmt.Errorf("no stylesheet writer configured")}
	}
	if err := p.Writer.WriteStylesheet(outputFile, out); err != nil {
		return "", &ExportError{File: outputFile, Err: err}
	}
	return out, nil
}
