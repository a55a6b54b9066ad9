package config

import (
	"strings"
	"testing"
)

func hasFieldError(errs []ValidationError, field string) bool {
	for _, err := range errs {
		if err.Field == field {
			return true
		}
	}
	return false
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got %d errors: %v", len(errs), errs)
	}
}

func TestConfig_Validate_Table(t *testing.T) {
	tests := []struct {
		name        string
		delimiter   string
		placeholder string
		field       string
		hasError    bool
	}{
		{"auto", "auto", "NoData", "table.delimiter", false},
		{"comma", ",", "NoData", "table.delimiter", false},
		{"semicolon", ";", "NoData", "table.delimiter", false},
		{"escaped tab", `\t`, "NoData", "table.delimiter", false},
		{"pipe", "|", "NoData", "table.delimiter", false},
		{"colon rejected", ":", "NoData", "table.delimiter", true},
		{"multi char rejected", ",,", "NoData", "table.delimiter", true},
		{"empty placeholder", "auto", "", "table.placeholder", false},
		{"multiline placeholder", "auto", "a\nb", "table.placeholder", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Table.Delimiter = tt.delimiter
			cfg.Table.Placeholder = tt.placeholder

			if got := hasFieldError(cfg.Validate(), tt.field); got != tt.hasError {
				t.Errorf("Validate() error on %s = %v, want %v", tt.field, got, tt.hasError)
			}
		})
	}
}

func TestConfig_Validate_TUI(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		field    string
		hasError bool
	}{
		{"zero min width", func(c *Config) { c.TUI.MinColumnWidth = 0 }, "tui.min_column_width", true},
		{"huge max width", func(c *Config) { c.TUI.MaxColumnWidth = 500 }, "tui.max_column_width", true},
		{"max below min", func(c *Config) { c.TUI.MinColumnWidth = 10; c.TUI.MaxColumnWidth = 5 }, "tui.max_column_width", true},
		{"equal widths", func(c *Config) { c.TUI.MinColumnWidth = 8; c.TUI.MaxColumnWidth = 8 }, "tui.max_column_width", false},
		{"builtin theme", func(c *Config) { c.TUI.Theme = "nord" }, "tui.theme", false},
		{"empty theme", func(c *Config) { c.TUI.Theme = "" }, "tui.theme", false},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui.theme", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if got := hasFieldError(cfg.Validate(), tt.field); got != tt.hasError {
				t.Errorf("Validate() error on %s = %v, want %v", tt.field, got, tt.hasError)
			}
		})
	}
}

func TestConfig_Validate_Logging(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		field    string
		hasError bool
	}{
		{"debug level", func(c *Config) { c.Logging.Level = "debug" }, "logging.level", false},
		{"empty level", func(c *Config) { c.Logging.Level = "" }, "logging.level", false},
		{"upper case level", func(c *Config) { c.Logging.Level = "INFO" }, "logging.level", true},
		{"zero size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb", true},
		{"huge size", func(c *Config) { c.Logging.MaxSizeMB = 2000 }, "logging.max_size_mb", true},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups", true},
		{"zero backups", func(c *Config) { c.Logging.MaxBackups = 0 }, "logging.max_backups", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if got := hasFieldError(cfg.Validate(), tt.field); got != tt.hasError {
				t.Errorf("Validate() error on %s = %v, want %v", tt.field, got, tt.hasError)
			}
		})
	}
}
