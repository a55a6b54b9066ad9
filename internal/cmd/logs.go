package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cairos/internal/config"
	"github.com/Iron-Ham/cairos/internal/logging"
)

// logsOptions are the flags of the logs command.
type logsOptions struct {
	tail     int
	follow   bool
	level    string
	since    string
	grep     string
	document string
}

func newLogsCmd() *cobra.Command {
	var opts logsOptions
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View the editor log",
		Long: `View and filter the cairos log file.

Examples:
  # Show the last 50 entries
  cairos logs

  # Show everything logged while editing one file
  cairos logs --document sites.csv -n 0

  # Only warnings and errors from the last hour
  cairos logs --level warn --since 1h

  # Follow the log while the editor runs in another terminal
  cairos logs -f`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.tail, "tail", "n", 50, "Number of entries to show (0 for all)")
	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Filter by minimum level (debug/info/warn/error)")
	cmd.Flags().StringVar(&opts.since, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	cmd.Flags().StringVar(&opts.grep, "grep", "", "Filter entries matching pattern (regex)")
	cmd.Flags().StringVar(&opts.document, "document", "", "Only entries about this file (base name or path)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newLogsCmd())
}

// logEntry is one parsed JSON log line.
type logEntry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Msg       string         `json:"msg"`
	Component string         `json:"component,omitempty"`
	Document  string         `json:"document,omitempty"`
	Extra     map[string]any `json:"-"`
}

// UnmarshalJSON keeps unknown attributes in Extra.
func (e *logEntry) UnmarshalJSON(data []byte) error {
	type alias logEntry
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "component", "document"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// logFilter selects the entries to print.
type logFilter struct {
	minLevel int
	since    time.Time
	grep     *regexp.Regexp
	document string
}

func newLogFilter(opts logsOptions, now time.Time) (logFilter, error) {
	f := logFilter{minLevel: -1, document: opts.document}

	if opts.level != "" {
		f.minLevel = levelPriority(logging.ParseLevel(opts.level))
	}
	if opts.since != "" {
		d, err := time.ParseDuration(opts.since)
		if err != nil {
			return f, fmt.Errorf("invalid duration format: %w", err)
		}
		f.since = now.Add(-d)
	}
	if opts.grep != "" {
		re, err := regexp.Compile(opts.grep)
		if err != nil {
			return f, fmt.Errorf("invalid grep pattern: %w", err)
		}
		f.grep = re
	}
	return f, nil
}

func (f logFilter) match(e *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(e.Level) < f.minLevel {
		return false
	}
	if !f.since.IsZero() && e.Time.Before(f.since) {
		return false
	}
	if f.document != "" && e.Document != f.document && filepath.Base(e.Document) != f.document {
		return false
	}
	if f.grep != nil {
		text := e.Msg
		for _, k := range slices.Sorted(maps.Keys(e.Extra)) {
			text += fmt.Sprintf(" %v", e.Extra[k])
		}
		if !f.grep.MatchString(text) {
			return false
		}
	}
	return true
}

// levelPriority orders levels for filtering. Unknown levels sort first.
func levelPriority(level string) int {
	return slices.Index(logging.ValidLevels(), strings.ToUpper(level))
}

var (
	logTimeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	logFieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	logLevelStyle = map[string]lipgloss.Style{
		logging.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		logging.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		logging.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		logging.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

// formatLogEntry renders an entry as a single terminal line.
func formatLogEntry(e *logEntry) string {
	level := strings.ToUpper(e.Level)
	var sb strings.Builder
	sb.WriteString(logTimeStyle.Render("[" + e.Time.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")
	sb.WriteString(logLevelStyle[level].Render("[" + level + "]"))
	sb.WriteString(" ")
	sb.WriteString(e.Msg)

	field := func(key string, value any) {
		sb.WriteString(" ")
		sb.WriteString(logFieldStyle.Render(key + "="))
		fmt.Fprintf(&sb, "%v", value)
	}
	if e.Component != "" {
		field("component", e.Component)
	}
	if e.Document != "" {
		field("document", e.Document)
	}
	for _, k := range slices.Sorted(maps.Keys(e.Extra)) {
		field(k, e.Extra[k])
	}
	return sb.String()
}

// formatLogLine parses and filters one raw line. Lines that are not JSON are
// passed through unchanged.
func formatLogLine(line string, f logFilter) (string, bool) {
	var e logEntry
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		return line, true
	}
	if !f.match(&e) {
		return "", false
	}
	return formatLogEntry(&e), true
}

func runLogs(cmd *cobra.Command, opts logsOptions) error {
	out := cmd.OutOrStdout()
	logPath := filepath.Join(config.StateDir(), logging.FileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "No log file found.")
		fmt.Fprintln(out, "Logs are stored at:", logPath)
		return nil
	}

	f, err := newLogFilter(opts, time.Now())
	if err != nil {
		return err
	}

	if opts.follow {
		return followLogs(cmd.Context(), out, logPath, f)
	}
	return displayLogs(out, logPath, opts.tail, f)
}

// displayLogs prints the last tail matching entries of the log file.
func displayLogs(out io.Writer, logPath string, tail int, f logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if formatted, ok := formatLogLine(line, f); ok {
			lines = append(lines, formatted)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(lines) > tail {
		lines = lines[len(lines)-tail:]
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	if len(lines) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
	}
	return nil
}

// followLogs prints entries appended to the log until ctx is done.
func followLogs(ctx context.Context, out io.Writer, logPath string, f logFilter) error {
	if ctx == nil {
		ctx = context.Background()
	}
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end: %w", err)
	}

	fmt.Fprintf(out, "Following logs... (Ctrl+C to stop)\n\n")

	reader := bufio.NewReader(file)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	var partial string
	for {
		chunk, err := reader.ReadString('\n')
		partial += chunk
		if err == io.EOF {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				continue
			}
		}
		if err != nil {
			return fmt.Errorf("error reading log file: %w", err)
		}

		line := strings.TrimSpace(partial)
		partial = ""
		if line == "" {
			continue
		}
		if formatted, ok := formatLogLine(line, f); ok {
			fmt.Fprintln(out, formatted)
		}
	}
}
