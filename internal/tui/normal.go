package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/filter"
	"github.com/Iron-Ham/cairos/internal/tui/keymap"
	"github.com/Iron-Ham/cairos/internal/view"
)

// handleNormalCommand executes a normal mode command
func (m Model) handleNormalCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	confirming := m.confirming
	m.confirming = ""
	if cmd != keymap.CmdToggleHelp {
		m.clearMessages()
	}

	switch cmd {
	case keymap.CmdMoveUp:
		m.moveCursor(-1, 0)
	case keymap.CmdMoveDown:
		m.moveCursor(1, 0)
	case keymap.CmdMoveLeft:
		m.moveCursor(0, -1)
	case keymap.CmdMoveRight:
		m.moveCursor(0, 1)
	case keymap.CmdFirstRow:
		m.cursorRow = 0
		m.ensureCursorVisible()
	case keymap.CmdLastRow:
		m.cursorRow = m.doc.View().RowCount() - 1
		m.ensureCursorVisible()
	case keymap.CmdPageUp:
		m.moveCursor(-m.pageRows(), 0)
	case keymap.CmdPageDown:
		m.moveCursor(m.pageRows(), 0)
	case keymap.CmdFirstColumn:
		m.cursorCol = 0
		m.ensureCursorVisible()
	case keymap.CmdLastColumn:
		m.cursorCol = m.doc.Store().ColumnCount() - 1
		m.ensureCursorVisible()

	case keymap.CmdEditCell:
		return m.startEdit()

	case keymap.CmdQuickFilter:
		m.quickBefore = m.doc.View().QuickFilter()
		return m.openPrompt(keymap.ModeQuickFilter, m.quickBefore)
	case keymap.CmdNextKeyColumn:
		m.cycleKeyColumn(1)
	case keymap.CmdPrevKeyColumn:
		m.cycleKeyColumn(-1)
	case keymap.CmdSelectKeyColumn:
		m.openColumnSelect()
	case keymap.CmdValueMenu:
		m.openValueMenu()
	case keymap.CmdClearFilters:
		m.doc.View().ClearFilters()
		m.ensureCursorVisible()
		m.setInfo("All filters cleared")

	case keymap.CmdSortAscending, keymap.CmdSortDescending:
		m.sort(cmd == keymap.CmdSortAscending)
	case keymap.CmdInsertRow:
		m.insertRow()
	case keymap.CmdDeleteRow:
		m.deleteRow()

	case keymap.CmdSave:
		if m.doc.Path() == "" {
			return m.openPrompt(keymap.ModeSavePrompt, "")
		}
		m.save(m.doc.Path())
	case keymap.CmdSaveAs:
		return m.openPrompt(keymap.ModeSavePrompt, m.doc.Path())
	case keymap.CmdOpen:
		if !m.confirmDiscard(cmd, confirming) {
			return m, nil
		}
		return m.openPrompt(keymap.ModeOpenPrompt, m.doc.Path())
	case keymap.CmdReload:
		if m.doc.Path() == "" {
			m.setError(errors.NewFileError("nothing to reload", errors.ErrNoPath))
			return m, nil
		}
		if !m.confirmDiscard(cmd, confirming) {
			return m, nil
		}
		m.open(m.doc.Path())

	case keymap.CmdToggleHelp:
		m.mode = keymap.ModeHelp
	case keymap.CmdQuit:
		if !m.confirmDiscard(cmd, confirming) {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// confirmDiscard reports whether cmd may go ahead. With unsaved edits the
// first press only warns; pressing the same key again confirms.
func (m *Model) confirmDiscard(cmd, confirming keymap.Command) bool {
	if !m.doc.Dirty() || confirming == cmd {
		return true
	}
	m.confirming = cmd
	keys := m.keymap.GetBindingsForCommand(cmd, keymap.ModeNormal)
	key := string(cmd)
	if len(keys) > 0 {
		key = keys[0].String()
	}
	m.infoMessage = fmt.Sprintf("Unsaved changes will be lost. Press %s again to continue.", key)
	return false
}

func (m *Model) moveCursor(dRow, dCol int) {
	m.cursorRow += dRow
	m.cursorCol += dCol
	m.ensureCursorVisible()
}

// storeRow returns the store row under the cursor.
func (m Model) storeRow() (int, error) {
	return m.doc.View().StoreRow(m.cursorRow)
}

func (m Model) startEdit() (tea.Model, tea.Cmd) {
	row, err := m.storeRow()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	text, err := m.doc.Store().Text(row, m.cursorCol)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	return m.openPrompt(keymap.ModeEdit, text)
}

func (m *Model) cycleKeyColumn(step int) {
	n := m.doc.Store().ColumnCount()
	if n == 0 {
		return
	}
	v := m.doc.View()
	next := ((v.KeyColumn()+step)%n + n) % n
	m.setKeyColumn(next)
}

func (m *Model) setKeyColumn(col int) {
	if err := m.doc.View().SetKeyColumn(col); err != nil {
		m.setError(err)
		return
	}
	m.ensureCursorVisible()
	name, _ := m.doc.Store().ColumnName(col)
	m.setInfo(fmt.Sprintf("Quick filter column: %s", name))
}

func (m *Model) openColumnSelect() {
	names := m.doc.Store().ColumnNames()
	items := make([]view.MenuItem, len(names))
	for i, name := range names {
		items[i] = view.MenuItem{Label: name}
	}
	m.openMenu(keymap.ModeColumnSelect, "Quick filter column", items, m.doc.View().KeyColumn())
}

func (m *Model) openValueMenu() {
	items, err := m.doc.View().ValueMenu(m.cursorCol)
	if err != nil {
		m.setError(err)
		return
	}
	selected := 0
	if pattern, ok := m.doc.Filters().Pattern(m.cursorCol); ok {
		for i, item := range items[1:] {
			if pattern == filter.ExactPattern(item.Label) {
				selected = i + 1
				break
			}
		}
	}
	name, _ := m.doc.Store().ColumnName(m.cursorCol)
	m.openMenu(keymap.ModeValueMenu, name, items, selected)
}

func (m *Model) sort(ascending bool) {
	if err := m.doc.Store().SortBy(m.cursorCol, ascending); err != nil {
		m.setError(err)
		return
	}
	name, _ := m.doc.Store().ColumnName(m.cursorCol)
	order := "ascending"
	if !ascending {
		order = "descending"
	}
	m.setInfo(fmt.Sprintf("Sorted by %s (%s)", name, order))
}

// insertRow adds a placeholder row below the cursor, or at the top when
// nothing is visible.
func (m *Model) insertRow() {
	at := 0
	if row, err := m.storeRow(); err == nil {
		at = row + 1
	}
	if err := m.doc.Store().InsertRow(at); err != nil {
		m.setError(err)
		return
	}
	if vr, ok := m.doc.View().ViewRow(at); ok {
		m.cursorRow = vr
		m.setInfo(fmt.Sprintf("Inserted row %d", at))
	} else {
		m.setInfo(fmt.Sprintf("Inserted row %d (hidden by filters)", at))
	}
	m.ensureCursorVisible()
}

func (m *Model) deleteRow() {
	store := m.doc.Store()
	if store.RowCount() == 0 {
		m.setError(errors.NewTableError("cannot delete from an empty table", errors.ErrTableEmpty))
		return
	}
	row, err := m.storeRow()
	if err != nil {
		m.setError(err)
		return
	}
	if err := store.RemoveRow(row); err != nil {
		m.setError(err)
		return
	}
	m.ensureCursorVisible()
	m.setInfo(fmt.Sprintf("Deleted row %d", row))
}

func (m *Model) save(path string) {
	if err := m.doc.SaveAs(path); err != nil {
		m.setError(err)
		return
	}
	m.diskChanged = false
	m.setInfo(fmt.Sprintf("Saved %s", path))
}

func (m *Model) open(path string) {
	if err := m.doc.Open(path); err != nil {
		m.setError(err)
		return
	}
	m.cursorRow, m.cursorCol = 0, 0
	m.rowOffset, m.colOffset = 0, 0
	m.diskChanged = false
	m.ensureCursorVisible()
	m.setInfo(fmt.Sprintf("Opened %s", path))
}
