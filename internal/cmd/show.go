package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Iron-Ham/cairos/internal/config"
	"github.com/Iron-Ham/cairos/internal/document"
	"github.com/Iron-Ham/cairos/internal/logging"
	"github.com/Iron-Ham/cairos/internal/util"
)

// showOptions are the flags of the show command.
type showOptions struct {
	filters []string
	columns string
	sort    string
	desc    bool
	width   int
}

func newShowCmd() *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print the filtered rows of a table",
		Long: `Print a table to stdout without starting the editor.

Filters use the same case-insensitive patterns as the editor's quick filter
and are combined: a row is printed only if it matches every filter.

Examples:
  cairos show sites.csv
  cairos show sites.csv --filter status=open --filter Location=east
  cairos show sites.csv --columns 'site_*,status' --sort site_codes --desc`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.filters, "filter", "f", nil, "Filter rows by column pattern (col=regex, repeatable)")
	cmd.Flags().StringVar(&opts.columns, "columns", "", "Comma-separated glob patterns of columns to print")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort rows by this column")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort in descending order")
	cmd.Flags().IntVar(&opts.width, "width", 0, "Maximum output width (default: terminal width)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newShowCmd())
}

func runShow(cmd *cobra.Command, path string, opts showOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	doc, err := document.New(nil, documentOptions(cfg, logging.NopLogger()))
	if err != nil {
		return err
	}
	defer doc.Close()
	if err := doc.Open(path); err != nil {
		return err
	}

	if err := applyShowFilters(doc, opts.filters); err != nil {
		return err
	}
	if opts.sort != "" {
		col, ok := doc.Store().ColumnIndex(opts.sort)
		if !ok {
			return unknownColumnError(doc, opts.sort)
		}
		if err := doc.Store().SortBy(col, !opts.desc); err != nil {
			return err
		}
	}

	cols, err := selectColumns(doc.Store().ColumnNames(), opts.columns)
	if err != nil {
		return err
	}

	width := opts.width
	if width <= 0 {
		width = terminalWidth(cmd.OutOrStdout())
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderShowTable(doc, cols, width))
	fmt.Fprintf(out, "%d of %d rows\n", doc.View().RowCount(), doc.Store().RowCount())
	return nil
}

// applyShowFilters installs each col=regex filter on the document.
func applyShowFilters(doc *document.Document, filters []string) error {
	for _, f := range filters {
		name, pattern, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid filter %q: expected column=pattern", f)
		}
		col, found := doc.Store().ColumnIndex(name)
		if !found {
			return unknownColumnError(doc, name)
		}
		if err := doc.Filters().Set(col, pattern); err != nil {
			return err
		}
		_ = doc.Store().SetColumnEmphasis(col, pattern != "")
	}
	return nil
}

func unknownColumnError(doc *document.Document, name string) error {
	return fmt.Errorf("unknown column %q\nAvailable columns: %s", name, strings.Join(doc.Store().ColumnNames(), ", "))
}

// selectColumns returns the indices of the columns matching any of the
// comma-separated glob patterns, in table order. Empty patterns select every
// column.
func selectColumns(names []string, patterns string) ([]int, error) {
	if strings.TrimSpace(patterns) == "" {
		cols := make([]int, len(names))
		for i := range cols {
			cols[i] = i
		}
		return cols, nil
	}

	var globs []glob.Glob
	for _, p := range strings.Split(patterns, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid column pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}

	var cols []int
	for i, name := range names {
		for _, g := range globs {
			if g.Match(name) {
				cols = append(cols, i)
				break
			}
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("no column matches %q\nAvailable columns: %s", patterns, strings.Join(names, ", "))
	}
	return cols, nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// renderShowTable draws the visible rows of doc restricted to cols. A
// positive width bounds the table.
func renderShowTable(doc *document.Document, cols []int, width int) string {
	store := doc.Store()
	v := doc.View()

	headers := make([]string, 0, len(cols)+1)
	headers = append(headers, "")
	for _, col := range cols {
		name, _ := store.ColumnName(col)
		headers = append(headers, name)
	}

	rows := make([][]string, 0, v.RowCount())
	for _, sr := range v.Rows() {
		cells := make([]string, 0, len(headers))
		cells = append(cells, store.RowLabel(sr))
		for _, col := range cols {
			text, _ := store.Text(sr, col)
			cells = append(cells, util.SingleLine(text))
		}
		rows = append(rows, cells)
	}

	header := lipgloss.NewStyle().Padding(0, 1)
	bold := header.Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow && col > 0 && store.Emphasis(cols[col-1]) {
				return bold
			}
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.String()
}
