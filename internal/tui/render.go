package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Iron-Ham/cairos/internal/tui/keymap"
	"github.com/Iron-Ham/cairos/internal/util"
)

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var body string
	switch m.mode {
	case keymap.ModeHelp:
		body = m.place(m.renderHelp())
	case keymap.ModeValueMenu, keymap.ModeColumnSelect:
		body = m.place(m.renderMenu())
	default:
		body = m.renderGrid()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		body,
		m.renderStatus(),
		m.renderPromptLine(),
	)
}

func (m Model) renderTitle() string {
	name := "untitled"
	if p := m.doc.Path(); p != "" {
		name = filepath.Base(p)
	}
	if m.doc.Dirty() {
		name += " [+]"
	}

	v := m.doc.View()
	store := m.doc.Store()
	title := m.styles.Title.Render("cairos") + "  " + name
	counts := fmt.Sprintf("%d/%d rows", v.RowCount(), store.RowCount())
	if n := m.doc.Filters().Len(); n > 0 {
		counts += fmt.Sprintf(", %d filtered columns", n)
	}
	return util.TruncateANSI(title+"  "+m.styles.Muted.Render(counts), max(m.width, 4))
}

// renderGrid draws the visible window of the filtered view.
func (m Model) renderGrid() string {
	store := m.doc.Store()
	v := m.doc.View()
	if store.ColumnCount() == 0 {
		return m.styles.Muted.Render("(no columns)")
	}

	widths := m.columnWidths()
	first := m.colOffset
	last := first + m.visibleColumns(first, widths)
	labelWidth := m.rowLabelWidth()

	headers := make([]string, 0, last-first+1)
	headers = append(headers, strings.Repeat(" ", labelWidth))
	for col := first; col < last; col++ {
		headers = append(headers, util.FitCell(m.headerText(col), widths[col]))
	}

	endRow := min(m.rowOffset+m.pageRows(), v.RowCount())
	rows := make([][]string, 0, max(endRow-m.rowOffset, 0))
	for vr := m.rowOffset; vr < endRow; vr++ {
		sr, err := v.StoreRow(vr)
		if err != nil {
			break
		}
		cells := make([]string, 0, len(headers))
		cells = append(cells, fmt.Sprintf("%*s", labelWidth, store.RowLabel(sr)))
		for col := first; col < last; col++ {
			text, _ := store.Text(sr, col)
			cells = append(cells, util.FitCell(text, widths[col]))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(m.styles.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return m.styles.RowLabel
			}
			storeCol := first + col - 1
			if row == table.HeaderRow {
				if store.Emphasis(storeCol) {
					return m.styles.FilteredHeader
				}
				return m.styles.Header
			}
			if m.rowOffset+row == m.cursorRow && storeCol == m.cursorCol {
				return m.styles.Cursor
			}
			return m.styles.Cell
		})

	grid := t.String()
	if v.RowCount() == 0 {
		msg := "no rows"
		if store.RowCount() > 0 {
			msg = "no rows match the filters (F clears them)"
		}
		grid = lipgloss.JoinVertical(lipgloss.Left, grid, m.styles.Muted.Render(msg))
	}
	return grid
}

// renderStatus shows the latest message or, without one, the cursor position.
func (m Model) renderStatus() string {
	var line string
	switch {
	case m.errorMessage != "":
		line = m.styles.Error.Render(m.errorMessage)
	case m.diskChanged:
		line = m.styles.Warning.Render("File changed on disk. Press R to reload.")
	case m.infoMessage != "":
		line = m.styles.Info.Render(m.infoMessage)
	default:
		line = m.positionText()
	}
	return util.TruncateANSI(line, max(m.width, 4))
}

func (m Model) positionText() string {
	v := m.doc.View()
	name, _ := m.doc.Store().ColumnName(m.cursorCol)
	if v.RowCount() == 0 {
		return m.styles.Muted.Render(fmt.Sprintf("column %s", name))
	}
	row, _ := v.StoreRow(m.cursorRow)
	kind, _ := m.doc.Store().Kind(m.cursorCol)
	return m.styles.Muted.Render(fmt.Sprintf("row %d  column %s (%s)", row, name, kind))
}

// renderPromptLine shows the active text prompt or a short key reminder.
func (m Model) renderPromptLine() string {
	var label string
	switch m.mode {
	case keymap.ModeEdit:
		name, _ := m.doc.Store().ColumnName(m.cursorCol)
		label = fmt.Sprintf("Edit %s: ", name)
	case keymap.ModeQuickFilter:
		name, _ := m.doc.Store().ColumnName(m.doc.View().KeyColumn())
		label = fmt.Sprintf("Filter %s: ", name)
	case keymap.ModeOpenPrompt:
		label = "Open: "
	case keymap.ModeSavePrompt:
		label = "Save as: "
	default:
		return m.renderHints()
	}
	return m.styles.Prompt.Render(label) + m.input.View()
}

func (m Model) renderHints() string {
	hints := []struct{ key, desc string }{
		{"/", "filter"},
		{"f", "values"},
		{"e", "edit"},
		{"s/S", "sort"},
		{"ctrl+s", "save"},
		{"?", "help"},
		{"q", "quit"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = m.styles.HelpKey.Render(h.key) + " " + m.styles.HelpDesc.Render(h.desc)
	}
	return util.TruncateANSI(strings.Join(parts, "  "), max(m.width, 4))
}

func (m Model) renderMenu() string {
	height := max(3, m.height-titleLines-statusLines-4)
	start := 0
	if m.menuCursor >= height {
		start = m.menuCursor - height + 1
	}
	end := min(start+height, len(m.menuItems))

	lines := []string{m.styles.Title.Render(m.menuTitle), ""}
	for i := start; i < end; i++ {
		label := util.SingleLine(m.menuItems[i].Label)
		if label == "" {
			label = "(empty)"
		}
		if i == m.menuCursor {
			lines = append(lines, m.styles.MenuSelected.Render("> "+label))
		} else {
			lines = append(lines, m.styles.MenuItem.Render("  "+label))
		}
	}
	return m.styles.Menu.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	help := m.keymap.Help(keymap.ModeNormal)
	var sections []string
	for _, cat := range m.keymap.GetCategories(keymap.ModeNormal) {
		lines := []string{m.styles.Title.Render(cat)}
		for _, entry := range help[cat] {
			keys := m.styles.HelpKey.Render(fmt.Sprintf("%-16s", strings.Join(entry.Keys, " ")))
			lines = append(lines, keys+" "+m.styles.HelpDesc.Render(entry.Description))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	// Sections are laid out in two columns.
	half := (len(sections) + 1) / 2
	left := strings.Join(sections[:half], "\n\n")
	right := strings.Join(sections[half:], "\n\n")
	content := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return m.styles.HelpBox.Render(content)
}

// place centers an overlay in the grid area.
func (m Model) place(content string) string {
	height := max(1, m.height-titleLines-statusLines)
	return lipgloss.Place(max(m.width, lipgloss.Width(content)), height, lipgloss.Center, lipgloss.Center, content)
}
