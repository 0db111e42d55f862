package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/themekit/internal/catalog"
	"github.com/opencode-ai/themekit/internal/config"
	"github.com/opencode-ai/themekit/internal/db"
	"github.com/opencode-ai/themekit/internal/events"
	"github.com/opencode-ai/themekit/internal/logging"
	"github.com/opencode-ai/themekit/internal/palette"
	"github.com/opencode-ai/themekit/internal/style"
)

// selection holds the per-command style flags.
type selection struct {
	style string
	theme string
	vars  []string
}

func (s *selection) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&s.style, "style", "s", "", "style to use (default from config)")
	flags.StringVarP(&s.theme, "theme", "t", "", "theme to use (default: the style's default theme)")
	flags.StringArrayVar(&s.vars, "set", nil, "override a variable, id=value (repeatable)")
}

// session is a configured style manager plus optional history recording.
type session struct {
	manager  *style.Manager
	catalog  *catalog.Layered
	history  *db.DB
	recorder *events.Recorder
	detach   func()
	logger   zerolog.Logger
}

type sessionOptions struct {
	record bool
	sink   palette.Sink
}

func currentConfig() *config.Config {
	if cfg := GetConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

func styleDirs(cfg *config.Config) []string {
	wd, _ := os.Getwd()
	dirs := []string{cfg.StylesDir}
	return append(dirs, catalog.SearchPaths(wd)...)
}

// openCatalog returns the layered style catalog for the current config.
func openCatalog() *catalog.Layered {
	return catalog.Open(styleDirs(currentConfig())...)
}

// openSession builds a manager, selects the requested style and theme and
// applies configured and flag overrides. Nothing is generated yet.
func openSession(ctx context.Context, sel selection, opts sessionOptions) (*session, error) {
	cfg := currentConfig()

	overrides, err := parseVars(sel.vars)
	if err != nil {
		return nil, err
	}

	cat := openCatalog()
	manager, err := style.NewManager(style.Options{
		Catalog:     cat,
		OutputDir:   cfg.OutputDir,
		PaletteSink: opts.sink,
	})
	if err != nil {
		return nil, err
	}

	s := &session{
		manager: manager,
		catalog: cat,
		logger:  logging.Component("cli"),
	}

	if opts.record && cfg.History.Enabled {
		if err := s.openHistory(ctx, cfg.History.Path); err != nil {
			// History is best effort; generation still works without it.
			s.logger.Warn().Err(err).Str("path", cfg.History.Path).Msg("history disabled")
		}
	}

	styleName := firstNonEmpty(sel.style, cfg.Style)
	if styleName == "" {
		s.Close()
		return nil, &PreflightError{
			Message:  "no style selected",
			Hint:     "pass --style or set style in themekit.yaml",
			NextStep: "themekit styles",
		}
	}
	if err := manager.SetCurrentStyle(styleName); err != nil {
		s.recordFailure(ctx, err)
		s.Close()
		return nil, err
	}

	if themeName := firstNonEmpty(sel.theme, cfg.Theme); themeName != "" && themeName != manager.CurrentTheme() {
		if err := manager.SetCurrentTheme(themeName); err != nil {
			s.recordFailure(ctx, err)
			s.Close()
			return nil, err
		}
	}

	s.applyOverrides(cfg.Variables, overrides)
	return s, nil
}

func (s *session) openHistory(ctx context.Context, path string) error {
	database, err := db.Open(path)
	if err != nil {
		return err
	}
	if _, err := database.MigrateUp(ctx); err != nil {
		database.Close()
		return err
	}

	s.history = database
	s.recorder = events.NewRecorder(db.NewEventRepository(database))
	s.detach = s.recorder.Attach(ctx, s.manager)
	return nil
}

func (s *session) applyOverrides(layers ...map[string]string) {
	for _, layer := range layers {
		ids := make([]string, 0, len(layer))
		for id := range layer {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			s.manager.SetThemeVariableValue(id, layer[id])
		}
	}
}

func (s *session) recordFailure(ctx context.Context, err error) {
	if s.recorder == nil {
		return
	}
	if recErr := s.recorder.RecordFailure(ctx, s.manager, err); recErr != nil {
		s.logger.Warn().Err(recErr).Msg("failed to record failure")
	}
}

// Close detaches history recording and closes the database.
func (s *session) Close() error {
	if s.detach != nil {
		s.detach()
		s.detach = nil
	}
	if s.history != nil {
		err := s.history.Close()
		s.history = nil
		return err
	}
	return nil
}

// parseVars parses id=value pairs. Later pairs win.
func parseVars(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid variable %q: expected id=value", pair)
		}
		out[id] = value
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
