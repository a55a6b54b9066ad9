package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cairos/internal/tui/keymap"
	"github.com/Iron-Ham/cairos/internal/view"
)

func (m *Model) openMenu(mode keymap.Mode, title string, items []view.MenuItem, selected int) {
	if len(items) == 0 {
		return
	}
	m.mode = mode
	m.menuTitle = title
	m.menuItems = items
	m.menuCursor = max(0, min(selected, len(items)-1))
}

func (m *Model) closeMenu() {
	m.mode = keymap.ModeNormal
	m.menuItems = nil
	m.menuTitle = ""
	m.menuCursor = 0
}

// handleMenuCommand handles navigation and choice in the value menu and the
// column selector.
func (m Model) handleMenuCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	n := len(m.menuItems)
	switch cmd {
	case keymap.CmdMenuUp:
		if n > 0 {
			m.menuCursor = (m.menuCursor - 1 + n) % n
		}
	case keymap.CmdMenuDown:
		if n > 0 {
			m.menuCursor = (m.menuCursor + 1) % n
		}
	case keymap.CmdCancel:
		m.closeMenu()
	case keymap.CmdConfirm:
		mode, choice := m.mode, m.menuCursor
		var item view.MenuItem
		if choice < n {
			item = m.menuItems[choice]
		}
		m.closeMenu()

		switch mode {
		case keymap.ModeColumnSelect:
			m.setKeyColumn(choice)
		case keymap.ModeValueMenu:
			if item.Apply == nil {
				break
			}
			if err := item.Apply(); err != nil {
				m.setError(err)
				break
			}
			m.cursorRow = 0
			m.ensureCursorVisible()
			m.clearMessages()
		}
	}
	return m, nil
}
