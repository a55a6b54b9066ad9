package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the editor's key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name: "default",
		Modes: map[Mode]*ModeBindings{
			ModeNormal:       defaultNormalBindings(),
			ModeEdit:         promptBindings(ModeEdit, "Store value", "Discard edit"),
			ModeQuickFilter:  promptBindings(ModeQuickFilter, "Keep filter", "Leave filter"),
			ModeOpenPrompt:   promptBindings(ModeOpenPrompt, "Open file", "Cancel"),
			ModeSavePrompt:   promptBindings(ModeSavePrompt, "Save file", "Cancel"),
			ModeValueMenu:    menuBindings(ModeValueMenu),
			ModeColumnSelect: menuBindings(ModeColumnSelect),
			ModeHelp:         defaultHelpBindings(),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			// Cursor
			{KeyType: tea.KeyUp, Command: CmdMoveUp, Description: "Up", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdMoveUp, Description: "Up", Category: "Navigation"},
			{KeyType: tea.KeyDown, Command: CmdMoveDown, Description: "Down", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdMoveDown, Description: "Down", Category: "Navigation"},
			{KeyType: tea.KeyLeft, Command: CmdMoveLeft, Description: "Left", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdMoveLeft, Description: "Left", Category: "Navigation"},
			{KeyType: tea.KeyRight, Command: CmdMoveRight, Description: "Right", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdMoveRight, Description: "Right", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdFirstRow, Description: "First row", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdLastRow, Description: "Last row", Category: "Navigation"},
			{KeyType: tea.KeyPgUp, Command: CmdPageUp, Description: "Page up", Category: "Navigation"},
			{KeyType: tea.KeyCtrlB, Command: CmdPageUp, Description: "Page up", Category: "Navigation"},
			{KeyType: tea.KeyPgDown, Command: CmdPageDown, Description: "Page down", Category: "Navigation"},
			{KeyType: tea.KeyCtrlF, Command: CmdPageDown, Description: "Page down", Category: "Navigation"},
			{KeyType: tea.KeyHome, Command: CmdFirstColumn, Description: "First column", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: '0', Command: CmdFirstColumn, Description: "First column", Category: "Navigation"},
			{KeyType: tea.KeyEnd, Command: CmdLastColumn, Description: "Last column", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: '$', Command: CmdLastColumn, Description: "Last column", Category: "Navigation"},

			// Editing
			{KeyType: tea.KeyEnter, Command: CmdEditCell, Description: "Edit cell", Category: "Editing"},
			{KeyType: tea.KeyRunes, Rune: 'e', Command: CmdEditCell, Description: "Edit cell", Category: "Editing"},
			{KeyType: tea.KeyRunes, Rune: 'a', Command: CmdInsertRow, Description: "Insert row below", Category: "Editing"},
			{KeyType: tea.KeyRunes, Rune: 'd', Command: CmdDeleteRow, Description: "Delete row", Category: "Editing"},
			{KeyType: tea.KeyRunes, Rune: 's', Command: CmdSortAscending, Description: "Sort ascending", Category: "Editing"},
			{KeyType: tea.KeyRunes, Rune: 'S', Command: CmdSortDescending, Description: "Sort descending", Category: "Editing"},

			// Filtering
			{KeyType: tea.KeyRunes, Rune: '/', Command: CmdQuickFilter, Description: "Quick filter", Category: "Filtering"},
			{KeyType: tea.KeyTab, Command: CmdNextKeyColumn, Description: "Next filter column", Category: "Filtering"},
			{KeyType: tea.KeyShiftTab, Command: CmdPrevKeyColumn, Description: "Previous filter column", Category: "Filtering"},
			{KeyType: tea.KeyRunes, Rune: 'c', Command: CmdSelectKeyColumn, Description: "Choose filter column", Category: "Filtering"},
			{KeyType: tea.KeyRunes, Rune: 'f', Command: CmdValueMenu, Description: "Filter column by value", Category: "Filtering"},
			{KeyType: tea.KeyRunes, Rune: 'F', Command: CmdClearFilters, Description: "Clear all filters", Category: "Filtering"},

			// File
			{KeyType: tea.KeyCtrlS, Command: CmdSave, Description: "Save", Category: "File"},
			{KeyType: tea.KeyRunes, Rune: 'W', Command: CmdSaveAs, Description: "Save as", Category: "File"},
			{KeyType: tea.KeyCtrlO, Command: CmdOpen, Description: "Open", Category: "File"},
			{KeyType: tea.KeyRunes, Rune: 'R', Command: CmdReload, Description: "Reload from disk", Category: "File"},

			// Application
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "Toggle help", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

// promptBindings only names the keys that leave a text prompt; every other
// key is handed to the text input.
func promptBindings(mode Mode, confirm, cancel string) *ModeBindings {
	return &ModeBindings{
		Mode: mode,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdConfirm, Description: confirm, Category: "Prompt"},
			{KeyType: tea.KeyEsc, Command: CmdCancel, Description: cancel, Category: "Prompt"},
			{KeyType: tea.KeyCtrlC, Command: CmdCancel, Description: cancel, Category: "Prompt"},
		},
	}
}

func menuBindings(mode Mode) *ModeBindings {
	return &ModeBindings{
		Mode: mode,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyUp, Command: CmdMenuUp, Description: "Previous item", Category: "Menu"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdMenuUp, Description: "Previous item", Category: "Menu"},
			{KeyType: tea.KeyShiftTab, Command: CmdMenuUp, Description: "Previous item", Category: "Menu"},
			{KeyType: tea.KeyDown, Command: CmdMenuDown, Description: "Next item", Category: "Menu"},
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdMenuDown, Description: "Next item", Category: "Menu"},
			{KeyType: tea.KeyTab, Command: CmdMenuDown, Description: "Next item", Category: "Menu"},
			{KeyType: tea.KeyEnter, Command: CmdConfirm, Description: "Choose", Category: "Menu"},
			{KeyType: tea.KeyEsc, Command: CmdCancel, Description: "Close", Category: "Menu"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdCancel, Description: "Close", Category: "Menu"},
		},
	}
}

func defaultHelpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeHelp,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEsc, Command: CmdCancel, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdCancel, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdCancel, Description: "Close help", Category: "Help"},
		},
	}
}
