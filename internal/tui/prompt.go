package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cairos/internal/tui/keymap"
)

// openPrompt switches to a text prompt mode with value preloaded.
func (m Model) openPrompt(mode keymap.Mode, value string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) closePrompt() {
	m.mode = keymap.ModeNormal
	m.input.Blur()
	m.input.SetValue("")
}

// updateInput feeds a key to the text input. The quick filter is applied on
// every change so the grid narrows while typing.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.mode == keymap.ModeQuickFilter && m.input.Value() != before {
		m.applyQuickFilter(m.input.Value())
	}
	return m, cmd
}

func (m *Model) applyQuickFilter(text string) {
	if err := m.doc.View().SetQuickFilter(text); err != nil {
		m.setError(err)
	} else {
		m.clearMessages()
	}
	m.ensureCursorVisible()
}

// handlePromptCommand handles confirm and cancel in the text prompt modes.
func (m Model) handlePromptCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	mode := m.mode
	value := m.input.Value()

	if cmd == keymap.CmdCancel {
		if mode == keymap.ModeQuickFilter && m.doc.View().QuickFilter() != m.quickBefore {
			m.applyQuickFilter(m.quickBefore)
		}
		m.closePrompt()
		return m, nil
	}
	if cmd != keymap.CmdConfirm {
		return m, nil
	}

	m.closePrompt()
	switch mode {
	case keymap.ModeEdit:
		m.commitEdit(value)
	case keymap.ModeQuickFilter:
		m.applyQuickFilter(value)
		if m.errorMessage == "" && value != "" {
			name, _ := m.doc.Store().ColumnName(m.doc.View().KeyColumn())
			m.setInfo(fmt.Sprintf("%d rows match %q in %s", m.doc.View().RowCount(), value, name))
		}
	case keymap.ModeOpenPrompt:
		if path := strings.TrimSpace(value); path != "" {
			m.open(path)
		}
	case keymap.ModeSavePrompt:
		if path := strings.TrimSpace(value); path != "" {
			m.save(path)
		}
	}
	return m, nil
}

// commitEdit stores value into the cursor cell. A value the column cannot
// hold is reported and the cell keeps its old content.
func (m *Model) commitEdit(value string) {
	row, err := m.storeRow()
	if err != nil {
		m.setError(err)
		return
	}
	if err := m.doc.Store().SetCell(row, m.cursorCol, value); err != nil {
		m.setError(err)
		return
	}
	if _, visible := m.doc.View().ViewRow(row); !visible {
		m.setInfo("Edited row no longer matches the filters")
	} else {
		m.clearMessages()
	}
	m.ensureCursorVisible()
}
