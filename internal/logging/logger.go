package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Iron-Ham/cairos/internal/errors"
)

// Log levels accepted in configuration.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// FileName is the log file created in the state directory.
const FileName = "cairos.log"

// Logger writes JSON log lines with persistent context attributes.
// It is safe for concurrent use; child loggers share the parent's writer.
type Logger struct {
	logger *slog.Logger
	out    *sink
	attrs  []slog.Attr
}

// sink owns the file behind a logger tree so Close happens once.
type sink struct {
	mu sync.Mutex
	w  io.WriteCloser
}

func (s *sink) close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}

// NewLogger creates a logger writing to dir/cairos.log, rotated according to
// rotation. An empty dir logs to stderr.
func NewLogger(dir, level string, rotation RotationConfig) (*Logger, error) {
	var (
		w   io.Writer = os.Stderr
		out *sink
	)
	if dir != "" {
		rw, err := NewRotatingWriter(filepath.Join(dir, FileName), rotation)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log")
		}
		w = rw
		out = &sink{w: rw}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{logger: slog.New(handler), out: out}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithDocument tags every entry with the open file's path.
func (l *Logger) WithDocument(path string) *Logger {
	return l.withAttr(slog.String("document", path))
}

// WithComponent tags every entry with the subsystem that wrote it.
func (l *Logger) WithComponent(name string) *Logger {
	return l.withAttr(slog.String("component", name))
}

// With returns a child logger carrying alternating key/value attributes.
// Non-string keys are skipped.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	attrs := make([]slog.Attr, 0, len(l.attrs)+len(args)/2)
	attrs = append(attrs, l.attrs...)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			attrs = append(attrs, slog.Any(key, args[i+1]))
		}
	}
	return &Logger{logger: l.logger, out: l.out, attrs: attrs}
}

func (l *Logger) withAttr(attr slog.Attr) *Logger {
	attrs := make([]slog.Attr, len(l.attrs), len(l.attrs)+1)
	copy(attrs, l.attrs)
	return &Logger{logger: l.logger, out: l.out, attrs: append(attrs, attr)}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(slog.LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(slog.LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

// LogError logs err at the level matching its severity.
func (l *Logger) LogError(msg string, err error, args ...any) {
	level := slog.LevelError
	switch errors.GetSeverity(err) {
	case errors.SeverityDebug:
		level = slog.LevelDebug
	case errors.SeverityInfo:
		level = slog.LevelInfo
	case errors.SeverityWarning:
		level = slog.LevelWarn
	}
	l.log(level, msg, append(args, "error", err.Error())...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	all := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		all = append(all, attr.Key, attr.Value.Any())
	}
	all = append(all, args...)
	l.logger.Log(context.Background(), level, msg, all...)
}

// Close flushes and closes the log file. Closing a stderr or nop logger, or
// closing twice, is a no-op.
func (l *Logger) Close() error {
	return l.out.close()
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// ParseLevel normalizes a level string, falling back to LevelInfo.
func ParseLevel(level string) string {
	upper := strings.ToUpper(level)
	for _, l := range ValidLevels() {
		if l == upper {
			return l
		}
	}
	return LevelInfo
}

// ValidLevels lists the accepted level names.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
