// Package resources renders a style's resource templates (icons and other
// assets) and hands the results to a materializer.
package resources

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/themekit/internal/templates"
	"github.com/opencode-ai/themekit/internal/variables"
)

// Materializer turns substituted resource text into a usable artifact.
type Materializer interface {
	Materialize(name, text string) error
}

// MaterializerFunc adapts a function to Materializer.
type MaterializerFunc func(name, text string) error

// Materialize implements Materializer.
func (f MaterializerFunc) Materialize(name, text string) error {
	return f(name, text)
}

// GenerationError reports the template that stopped a generation run.
type GenerationError struct {
	Index int
	Name  string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("resource %d (%s): %v", e.Index+1, e.Name, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Result lists what a generation run produced.
type Result struct {
	// Materialized holds the names written in this run, in order. On
	// failure it still lists the resources written before the failing one;
	// those are not rolled back. Without a materializer nothing is written
	// and it stays empty.
	Materialized []string
}

// Generator renders resource templates in declaration order.
type Generator struct {
	Materializer Materializer
	Logger       zerolog.Logger
}

// Generate substitutes and materializes each template in order. The first
// failure aborts the run.
func (g *Generator) Generate(tmpls []templates.Template, view variables.View) (Result, error) {
	result := Result{Materialized: make([]string, 0, len(tmpls))}

	for i, tmpl := range tmpls {
		text, err := templates.Render(tmpl, view)
		if err != nil {
			return result, &GenerationError{Index: i, Name: tmpl.Name, Err: err}
		}

		if g.Materializer == nil {
			continue
		}
		if err := g.Materializer.Materialize(tmpl.Name, text); err != nil {
			g.Logger.Warn().Err(err).Str("resource", tmpl.Name).Msg("failed to materialize resource")
			return result, &GenerationError{Index: i, Name: tmpl.Name, Err: err}
		}
		result.Materialized = append(result.Materialized, tmpl.Name)
	}

	g.Logger.Debug().Int("count", len(tmpls)).Int("written", len(result.Materialized)).Msg("resources generated")
	return result, nil
}
