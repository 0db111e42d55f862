// Package config loads themekit configuration from file, environment and
// flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/opencode-ai/themekit/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. THEMEKIT_OUTPUT_DIR.
const EnvPrefix = "THEMEKIT"

// FileName is the config file name without extension.
const FileName = "themekit"

// Config is the full themekit configuration.
type Config struct {
	// StylesDir adds a style directory searched before the defaults.
	StylesDir string `mapstructure:"styles_dir"`

	// OutputDir receives generated files, one subdirectory per style.
	OutputDir string `mapstructure:"output_dir"`

	// Style and Theme select what commands operate on by default.
	Style string `mapstructure:"style"`
	Theme string `mapstructure:"theme"`

	// Variables are applied as overrides before every generation.
	Variables map[string]string `mapstructure:"variables"`

	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HistoryConfig configures the generation history database.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: filepath.Join(cacheDir(), "themekit"),
		Style:     "plain",
		Variables: map[string]string{},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(configDir(), "themekit", "history.db"),
		},
	}
}

// LoggingConfig converts the log section for logging.Init.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	return cfg
}

// Load reads configuration. When path is empty, themekit.yaml is looked up
// in the working directory and the user config directory; a missing file
// is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(configDir(), "themekit"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if cfg.Variables == nil {
		cfg.Variables = map[string]string{}
	}

	cfg.OutputDir = expandHome(cfg.OutputDir)
	cfg.StylesDir = expandHome(cfg.StylesDir)
	cfg.History.Path = expandHome(cfg.History.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values themekit cannot work with.
func (c *Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.OutputDir) == "" {
		problems = append(problems, "output_dir is required")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %v", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format: unknown format %q", c.Log.Format))
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		problems = append(problems, "history.path is required when history is enabled")
	}
	for id := range c.Variables {
		if strings.TrimSpace(id) == "" {
			problems = append(problems, "variables: empty variable id")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("styles_dir", cfg.StylesDir)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("style", cfg.Style)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("variables", cfg.Variables)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.path", cfg.History.Path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func cacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return dir
	}
	return os.TempDir()
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}
