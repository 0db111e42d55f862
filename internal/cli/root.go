// Package cli implements the themekit command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/themekit/internal/config"
	"github.com/opencode-ai/themekit/internal/logging"
)

var (
	cfgFile        string
	jsonOutput     bool
	jsonlOutput    bool
	logLevel       string
	noColor        bool
	noProgress     bool
	nonInteractive bool

	appConfig *config.Config
)

// Version is set by the main package.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:           "themekit",
	Short:         "Generate stylesheets and resources from style themes",
	Long:          "themekit resolves style themes and variable overrides into stylesheets, icons and palettes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		if err := logging.Init(cfg.LoggingConfig()); err != nil {
			return err
		}
		appConfig = cfg

		logger := logging.Component("cli")
		if cfg.File != "" {
			logger.Debug().Str("file", cfg.File).Msg("config loaded")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./themekit.yaml or ~/.config/themekit/themekit.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress output")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never assume a terminal")
	rootCmd.Version = Version
}

// Execute runs the root command.
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration, or nil before a command runs.
func GetConfig() *config.Config {
	return appConfig
}

// PreflightError is a user-facing error with a suggested fix.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	msg := e.Message
	if e.Hint != "" {
		msg += "\nhint: " + e.Hint
	}
	if e.NextStep != "" {
		msg += fmt.Sprintf("\ntry: %s", e.NextStep)
	}
	return msg
}
