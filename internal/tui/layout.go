package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/cairos/internal/util"
)

// Layout constants
const (
	titleLines  = 1
	statusLines = 2
	// gridChrome is the table's top border, header row, header separator
	// and bottom border.
	gridChrome = 4

	// keyMarker is appended to the header of the quick filter column.
	keyMarker = " /"
)

// pageRows is the number of data rows that fit on screen.
func (m Model) pageRows() int {
	return max(1, m.height-titleLines-statusLines-gridChrome)
}

// headerText is the header cell text of col.
func (m Model) headerText(col int) string {
	name, _ := m.doc.Store().ColumnName(col)
	if col == m.doc.View().KeyColumn() {
		return name + keyMarker
	}
	return name
}

// columnWidths measures every column over all rows so widths do not jump
// while scrolling.
func (m Model) columnWidths() []int {
	store := m.doc.Store()
	widths := make([]int, store.ColumnCount())
	for col := range widths {
		w := lipgloss.Width(m.headerText(col))
		for row := range store.RowCount() {
			text, _ := store.Text(row, col)
			w = max(w, lipgloss.Width(util.SingleLine(text)))
		}
		widths[col] = min(max(w, m.minWidth), m.maxWidth)
	}
	return widths
}

func (m Model) rowLabelWidth() int {
	return len(strconv.Itoa(max(m.doc.Store().RowCount()-1, 0)))
}

// visibleColumns returns how many columns starting at start fit the
// terminal width. At least one column is always shown.
func (m Model) visibleColumns(start int, widths []int) int {
	if start >= len(widths) {
		return 0
	}
	if m.width <= 0 {
		return len(widths) - start
	}
	// outer borders plus the padded row label column
	available := m.width - 2 - (m.rowLabelWidth() + 2)
	used, count := 0, 0
	for _, w := range widths[start:] {
		// separator plus padded content
		cost := w + 3
		if used+cost > available {
			break
		}
		used += cost
		count++
	}
	return max(count, 1)
}

// ensureCursorVisible clamps the cursor to the view and scrolls so it is on
// screen.
func (m *Model) ensureCursorVisible() {
	rows := m.doc.View().RowCount()
	cols := m.doc.Store().ColumnCount()

	m.cursorRow = max(0, min(m.cursorRow, rows-1))
	m.cursorCol = max(0, min(m.cursorCol, cols-1))

	page := m.pageRows()
	if m.cursorRow < m.rowOffset {
		m.rowOffset = m.cursorRow
	}
	if m.cursorRow >= m.rowOffset+page {
		m.rowOffset = m.cursorRow - page + 1
	}
	m.rowOffset = max(0, min(m.rowOffset, rows-page))

	if cols == 0 {
		m.colOffset = 0
		return
	}
	widths := m.columnWidths()
	if m.cursorCol < m.colOffset {
		m.colOffset = m.cursorCol
	}
	for m.colOffset < m.cursorCol && m.cursorCol >= m.colOffset+m.visibleColumns(m.colOffset, widths) {
		m.colOffset++
	}
	m.colOffset = max(0, min(m.colOffset, cols-1))
}
