// Package errors provides centralized error definitions and error handling utilities
// for cairos. It defines domain-specific errors, semantic error types, error
// constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - TableError: cell, row and column operations on the table store
//   - FilterError: filter pattern compilation and application
//   - FileError: reading and writing delimited files
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or configuration
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewTableError("cannot set cell", errors.ErrCoercion).WithRow(3).WithColumn(1)
//	err := errors.NewFileError("parse failed", errors.ErrMalformedFile).WithPath(p).WithLine(7)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrRowOutOfRange) { ... }
//
//	var tableErr *errors.TableError
//	if errors.As(err, &tableErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
//
// # Error Classification
//
// Every failure in the editor core is local and non-fatal. Severity is used by
// the TUI to pick the status-line style and by the logger to pick a level.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Table-related sentinel errors
var (
	// ErrRowOutOfRange indicates a row index outside [0, rowCount).
	ErrRowOutOfRange = New("row index out of range")
	// ErrColumnOutOfRange indicates a column index outside [0, columnCount).
	ErrColumnOutOfRange = New("column index out of range")
	// ErrTableEmpty indicates an operation that needs at least one row.
	ErrTableEmpty = New("table is empty")
	// ErrCoercion indicates edited text could not be converted to the column type.
	ErrCoercion = New("value does not match column type")
	// ErrDuplicateColumn indicates two columns share a name.
	ErrDuplicateColumn = New("duplicate column name")
)

// Filter-related sentinel errors
var (
	// ErrInvalidPattern indicates a filter pattern that is not a valid regular expression.
	ErrInvalidPattern = New("invalid filter pattern")
)

// File-related sentinel errors
var (
	// ErrMalformedFile indicates a delimited file that cannot be parsed.
	ErrMalformedFile = New("malformed file")
	// ErrNoPath indicates a save without a known destination.
	ErrNoPath = New("no file path")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// CairosError is the base interface for all cairos errors.
type CairosError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// Message returns the message without the cause chain.
func (e *baseError) Message() string {
	return e.message
}

// formatWithContext renders "kind [k=v, ...]: message: cause".
func (e *baseError) formatWithContext(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// TableError represents errors from table store operations.
//
// Example:
//
//	err := errors.NewTableError("cannot set cell", errors.ErrCoercion).WithRow(2).WithColumn(0)
//	fmt.Println(err) // "table error [row=2, column=0]: cannot set cell: value does not match column type"
type TableError struct {
	baseError
	Row    int // -1 when not applicable
	Column int // -1 when not applicable
}

// NewTableError creates a new TableError.
func NewTableError(message string, cause error) *TableError {
	return &TableError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Row:    -1,
		Column: -1,
	}
}

// WithRow adds a row index to the error context.
func (e *TableError) WithRow(row int) *TableError {
	e.Row = row
	return e
}

// WithColumn adds a column index to the error context.
func (e *TableError) WithColumn(col int) *TableError {
	e.Column = col
	return e
}

// WithSeverity sets the error severity.
func (e *TableError) WithSeverity(s Severity) *TableError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *TableError) Error() string {
	var parts []string
	if e.Row >= 0 {
		parts = append(parts, fmt.Sprintf("row=%d", e.Row))
	}
	if e.Column >= 0 {
		parts = append(parts, fmt.Sprintf("column=%d", e.Column))
	}
	return e.formatWithContext("table error", parts)
}

// Is checks if this error matches the target.
func (e *TableError) Is(target error) bool {
	if _, ok := target.(*TableError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// FilterError represents errors from setting or evaluating column filters.
//
// Example:
//
//	err := errors.NewFilterError("cannot compile", errors.ErrInvalidPattern).WithColumn(1).WithPattern("(")
type FilterError struct {
	baseError
	Column  int
	Pattern string
}

// NewFilterError creates a new FilterError.
func NewFilterError(message string, cause error) *FilterError {
	return &FilterError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Column: -1,
	}
}

// WithColumn adds a column index to the error context.
func (e *FilterError) WithColumn(col int) *FilterError {
	e.Column = col
	return e
}

// WithPattern adds the offending pattern to the error context.
func (e *FilterError) WithPattern(pattern string) *FilterError {
	e.Pattern = pattern
	return e
}

// Error returns the formatted error message.
func (e *FilterError) Error() string {
	var parts []string
	if e.Column >= 0 {
		parts = append(parts, fmt.Sprintf("column=%d", e.Column))
	}
	if e.Pattern != "" {
		parts = append(parts, fmt.Sprintf("pattern=%q", e.Pattern))
	}
	return e.formatWithContext("filter error", parts)
}

// Is checks if this error matches the target.
func (e *FilterError) Is(target error) bool {
	if _, ok := target.(*FilterError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// FileError represents errors from loading or saving delimited files.
//
// Example:
//
//	err := errors.NewFileError("too many fields", errors.ErrMalformedFile).WithPath("sites.csv").WithLine(5)
type FileError struct {
	baseError
	Path string
	Line int // 1-based; 0 when not applicable
}

// NewFileError creates a new FileError.
func NewFileError(message string, cause error) *FileError {
	return &FileError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
	}
}

// WithPath adds a file path to the error context.
func (e *FileError) WithPath(path string) *FileError {
	e.Path = path
	return e
}

// WithLine adds a 1-based line number to the error context.
func (e *FileError) WithLine(line int) *FileError {
	e.Line = line
	return e
}

// Error returns the formatted error message.
func (e *FileError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}
	return e.formatWithContext("file error", parts)
}

// Is checks if this error matches the target.
func (e *FileError) Is(target error) bool {
	if _, ok := target.(*FileError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("must be positive").WithField("tui.max_column_width").WithValue(-1)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.formatWithContext("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var cairosErr CairosError
	if As(err, &cairosErr) {
		return cairosErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement CairosError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var cairosErr CairosError
	if As(err, &cairosErr) {
		return cairosErr.Severity()
	}
	return SeverityError
}

// UserMessage returns text suitable for the status line. User-facing errors are
// shown as-is; anything else is reduced to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsUserFacing(err) {
		return err.Error()
	}
	return "internal error: " + err.Error()
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
