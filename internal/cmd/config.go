package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/cairos/internal/config"
	"github.com/Iron-Ham/cairos/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify cairos configuration",
	Long: `View or modify cairos configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  cairos config set table.delimiter ";"
  cairos config set tui.theme nord
  cairos config set logging.level debug

Valid keys:
  table.placeholder       - Text of the cells of inserted rows
  table.delimiter         - Field separator: auto, ",", ";", "\t" or "|"
  tui.max_column_width    - Wider cells are truncated
  tui.min_column_width    - Narrower columns are padded
  tui.theme               - default, monokai, nord or solarized-light
  tui.theme_file          - YAML theme file overriding tui.theme
  tui.watch_file          - Report changes made by other programs (true/false)
  logging.enabled         - Write cairos.log (true/false)
  logging.level           - debug, info, warn or error
  logging.max_size_mb     - Rotate the log at this size
  logging.max_backups     - Rotated logs to keep`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/cairos/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// configKeyTypes lists the settable keys and the type of their values.
var configKeyTypes = map[string]string{
	"table.placeholder":    "string",
	"table.delimiter":      "string",
	"tui.max_column_width": "int",
	"tui.min_column_width": "int",
	"tui.theme":            "string",
	"tui.theme_file":       "string",
	"tui.watch_file":       "bool",
	"logging.enabled":      "bool",
	"logging.level":        "string",
	"logging.max_size_mb":  "int",
	"logging.max_backups":  "int",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg := config.Get()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	writeConfig(out, cfg)
	return nil
}

func writeConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "table:")
	fmt.Fprintf(out, "  placeholder: %s\n", cfg.Table.Placeholder)
	fmt.Fprintf(out, "  delimiter: %q\n", cfg.Table.Delimiter)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  max_column_width: %d\n", cfg.TUI.MaxColumnWidth)
	fmt.Fprintf(out, "  min_column_width: %d\n", cfg.TUI.MinColumnWidth)
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	if cfg.TUI.ThemeFile != "" {
		fmt.Fprintf(out, "  theme_file: %s\n", cfg.TUI.ThemeFile)
	}
	fmt.Fprintf(out, "  watch_file: %v\n", cfg.TUI.WatchFile)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
}

// parseConfigValue converts value to the type of key.
func parseConfigValue(key, value string) (any, error) {
	keyType, ok := configKeyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'cairos config set --help' to see valid keys", key)
	}

	switch keyType {
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		return b, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		return n, nil
	default:
		return value, nil
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	typedValue, err := parseConfigValue(key, args[1])
	if err != nil {
		return err
	}

	// Validate the whole configuration with the new value before writing
	previous := viper.Get(key)
	viper.Set(key, typedValue)
	if _, err := config.Load(); err != nil {
		viper.Set(key, previous)
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := config.ConfigFile()
	if used := viper.ConfigFileUsed(); used != "" {
		configFile = used
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// defaultConfigContent is the commented file written by config init.
const defaultConfigContent = `# cairos configuration

# Reading and editing tables
table:
  # Text written into every cell of an inserted row
  placeholder: NoData
  # Field separator: auto, ",", ";", "\t" or "|"
  # auto detects it from the file; new files use a comma
  delimiter: auto

# TUI (terminal user interface) settings
tui:
  # Cells wider than this are truncated
  max_column_width: 24
  # Narrower columns are padded to this width
  min_column_width: 4
  # Built-in theme: default, monokai, nord, solarized-light
  theme: default
  # Optional YAML theme file that overrides theme
  # theme_file: ~/.config/cairos/theme.yaml
  # Show a warning when another program changes the open file
  watch_file: true

# Logging goes to cairos.log in the state directory
# ($XDG_STATE_HOME/cairos or ~/.local/state/cairos)
logging:
  enabled: true
  # Options: debug, info, warn, error
  level: info
  # Rotate the log once it reaches this size
  max_size_mb: 5
  # Number of rotated logs to keep
  max_backups: 2
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'cairos config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize cairos.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: CAIROS_* (e.g., CAIROS_TABLE_DELIMITER)")
	fmt.Fprintf(out, "Log file: %s\n", filepath.Join(config.StateDir(), logging.FileName))
	return nil
}
