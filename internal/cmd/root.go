// Package cmd holds the cairos command line.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/cairos/internal/config"
	"github.com/Iron-Ham/cairos/internal/csvio"
	"github.com/Iron-Ham/cairos/internal/document"
	"github.com/Iron-Ham/cairos/internal/logging"
	"github.com/Iron-Ham/cairos/internal/tui"
	"github.com/Iron-Ham/cairos/internal/tui/styles"
)

var rootCmd = &cobra.Command{
	Use:   "cairos [file]",
	Short: "Terminal editor for delimited tables",
	Long: `cairos opens a delimited text table in an interactive grid where rows can
be filtered per column, sorted, edited, inserted and deleted.

The first line of a file is a free-form label row, the second holds the
column names and every further line is one data row. Without a file the
editor starts with a small sample table.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEdit,
}

var editCmd = &cobra.Command{
	Use:          "edit [file]",
	Short:        "Open a table in the interactive editor",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runEdit,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cairos/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(editCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CAIROS")
	// e.g., CAIROS_TABLE_DELIMITER for table.delimiter
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	doc, err := openDocument(cfg, logger, args)
	if err != nil {
		return err
	}
	defer doc.Close()

	st, err := styles.Resolve(cfg.TUI.Theme, cfg.TUI.ThemeFile)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	if doc.Path() != "" {
		logger = logger.WithDocument(doc.Path())
	}
	logger.Info("editor starting", "theme", cfg.TUI.Theme, "watch_file", cfg.TUI.WatchFile)

	app := tui.New(doc, tui.AppOptions{
		Model: tui.Options{
			Styles:         st,
			MinColumnWidth: cfg.TUI.MinColumnWidth,
			MaxColumnWidth: cfg.TUI.MaxColumnWidth,
			Logger:         logger,
		},
		WatchFile: cfg.TUI.WatchFile,
	})
	return app.Run()
}

// documentOptions maps the table settings onto document options. The
// delimiter has already been validated by config.Load.
func documentOptions(cfg *config.Config, logger *logging.Logger) document.Options {
	delim, err := csvio.ParseDelimiter(cfg.Table.Delimiter)
	if err != nil {
		delim = csvio.Auto
	}
	return document.Options{
		Placeholder: cfg.Table.Placeholder,
		Delimiter:   delim,
		Logger:      logger,
	}
}

// openDocument creates the document and loads the file named in args, if
// any.
func openDocument(cfg *config.Config, logger *logging.Logger, args []string) (*document.Document, error) {
	doc, err := document.New(nil, documentOptions(cfg, logger))
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return doc, nil
	}
	if err := doc.Open(args[0]); err != nil {
		doc.Close()
		return nil, err
	}
	return doc, nil
}

// newLogger opens the log file in the state directory, or returns a logger
// that discards everything when logging is disabled.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(config.StateDir(), cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start logging: %w", err)
	}
	return logger, nil
}
