package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/cairos/internal/csvio"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.max_column_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidThemes returns the built-in theme names accepted by tui.theme.
// It mirrors styles.BuiltinThemes.
func ValidThemes() []string {
	return []string{"default", "monokai", "nord", "solarized-light"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateTable()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)
	return errors
}

func (c *Config) validateTable() []ValidationError {
	var errors []ValidationError

	if _, err := csvio.ParseDelimiter(c.Table.Delimiter); err != nil {
		errors = append(errors, ValidationError{
			Field:   "table.delimiter",
			Value:   c.Table.Delimiter,
			Message: `must be one of: auto, ",", ";", "\t", "|"`,
		})
	}

	if strings.ContainsAny(c.Table.Placeholder, "\r\n") {
		errors = append(errors, ValidationError{
			Field:   "table.placeholder",
			Value:   c.Table.Placeholder,
			Message: "must be a single line",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	const minWidth = 1
	const maxWidth = 200
	if c.TUI.MinColumnWidth < minWidth {
		errors = append(errors, ValidationError{
			Field:   "tui.min_column_width",
			Value:   c.TUI.MinColumnWidth,
			Message: fmt.Sprintf("must be at least %d", minWidth),
		})
	}
	if c.TUI.MaxColumnWidth > maxWidth {
		errors = append(errors, ValidationError{
			Field:   "tui.max_column_width",
			Value:   c.TUI.MaxColumnWidth,
			Message: fmt.Sprintf("exceeds maximum of %d columns", maxWidth),
		})
	}
	if c.TUI.MaxColumnWidth < c.TUI.MinColumnWidth {
		errors = append(errors, ValidationError{
			Field:   "tui.max_column_width",
			Value:   c.TUI.MaxColumnWidth,
			Message: "must not be smaller than tui.min_column_width",
		})
	}

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidThemes(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
