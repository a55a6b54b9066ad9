package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete cairos configuration
type Config struct {
	Table   TableConfig   `mapstructure:"table"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TableConfig controls how tables are read and edited
type TableConfig struct {
	// Placeholder is the text written into every cell of an inserted row
	Placeholder string `mapstructure:"placeholder"`
	// Delimiter separates fields on disk.
	// Options: "auto", ",", ";", "\t", "|"
	Delimiter string `mapstructure:"delimiter"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// MaxColumnWidth truncates wider cells (default: 24)
	MaxColumnWidth int `mapstructure:"max_column_width"`
	// MinColumnWidth pads narrower columns (default: 4)
	MinColumnWidth int `mapstructure:"min_column_width"`
	// Theme is a built-in color theme name (default: "default")
	Theme string `mapstructure:"theme"`
	// ThemeFile is an optional YAML theme that overrides Theme
	ThemeFile string `mapstructure:"theme_file"`
	// WatchFile reports when the open file is changed by another program
	WatchFile bool `mapstructure:"watch_file"`
}

// LoggingConfig controls debug logging
type LoggingConfig struct {
	// Enabled controls whether logging is active (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the size at which the log file is rotated (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Table: TableConfig{
			Placeholder: "NoData",
			Delimiter:   "auto",
		},
		TUI: TUIConfig{
			MaxColumnWidth: 24,
			MinColumnWidth: 4,
			Theme:          "default",
			ThemeFile:      "",
			WatchFile:      true,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("table.placeholder", defaults.Table.Placeholder)
	viper.SetDefault("table.delimiter", defaults.Table.Delimiter)

	viper.SetDefault("tui.max_column_width", defaults.TUI.MaxColumnWidth)
	viper.SetDefault("tui.min_column_width", defaults.TUI.MinColumnWidth)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.theme_file", defaults.TUI.ThemeFile)
	viper.SetDefault("tui.watch_file", defaults.TUI.WatchFile)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when the
// loaded values do not validate
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cairos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cairos"
	}
	return filepath.Join(home, ".config", "cairos")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the directory holding the log file
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cairos")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cairos"
	}
	return filepath.Join(home, ".local", "state", "cairos")
}
