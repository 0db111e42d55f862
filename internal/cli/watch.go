package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/themekit/internal/catalog"
	"github.com/opencode-ai/themekit/internal/style"
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchSel.bind(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "wait this long after the last change before regenerating")
}

var (
	watchSel      selection
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the style's files change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s, err := openSession(ctx, watchSel, sessionOptions{record: true})
		if err != nil {
			return err
		}
		defer s.Close()
		m := s.manager

		dirs := watchDirs(m)
		if len(dirs) == 0 {
			return &PreflightError{
				Message:  fmt.Sprintf("style %q is built in and cannot be watched", m.CurrentStyle()),
				Hint:     "copy it into .themekit/styles/ and edit the copy",
				NextStep: "themekit styles",
			}
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()
		for _, dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}

		report := func(err error) {
			if err != nil {
				s.recordFailure(ctx, err)
				fmt.Fprintf(os.Stderr, "%s: %s\n", formatErrorKind(m.ErrorKind()), m.ErrorString())
				return
			}
			fmt.Fprintf(os.Stdout, "%s %s/%s at %s\n", formatErrorKind(style.NoError), m.CurrentStyle(), m.CurrentTheme(), time.Now().Format(time.TimeOnly))
		}

		report(m.UpdateStylesheet())
		s.logger.Info().Strs("dirs", dirs).Msg("watching style")

		// Every manager call happens on this goroutine.
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if relevantEvent(event) {
					s.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("style file changed")
					pending = time.After(watchDebounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				s.logger.Warn().Err(err).Msg("watch error")
			case <-pending:
				pending = nil
				report(reloadAndGenerate(m))
			}
		}
	},
}

// watchDirs returns the on-disk directories of the current style that
// exist. Built-in styles have none.
func watchDirs(m *style.Manager) []string {
	candidates := []string{
		m.CurrentStylePath(),
		m.Path(catalog.ThemesLocation),
		m.Path(catalog.ResourceTemplatesLocation),
	}
	var dirs []string
	for _, dir := range candidates {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func relevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	// Editor swap and backup files.
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~") && !strings.HasSuffix(base, ".swp")
}

// reloadAndGenerate re-reads the current style from disk, keeps the
// current theme when it still exists, and runs the full pipeline.
func reloadAndGenerate(m *style.Manager) error {
	styleName, themeName := m.CurrentStyle(), m.CurrentTheme()
	if err := m.SetCurrentStyle(styleName); err != nil {
		return err
	}
	if themeName != "" && themeName != m.CurrentTheme() {
		for _, candidate := range m.Themes() {
			if candidate == themeName {
				if err := m.SetCurrentTheme(themeName); err != nil {
					return err
				}
				break
			}
		}
	}
	return m.UpdateStylesheet()
}
