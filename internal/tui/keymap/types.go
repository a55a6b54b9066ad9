// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode so the editor's Update method only has to
// translate a command into an action.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeNormal       Mode = "normal"        // Moving around the grid
	ModeEdit         Mode = "edit"          // Editing the cursor cell
	ModeQuickFilter  Mode = "quick_filter"  // Typing the quick filter (after /)
	ModeValueMenu    Mode = "value_menu"    // Choosing a value of the cursor column (after f)
	ModeColumnSelect Mode = "column_select" // Choosing the quick filter column (after c)
	ModeOpenPrompt   Mode = "open_prompt"   // Typing a path to open
	ModeSavePrompt   Mode = "save_prompt"   // Typing a path to save to
	ModeHelp         Mode = "help"          // Help overlay
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Normal mode commands
const (
	CmdMoveUp      Command = "move_up"
	CmdMoveDown    Command = "move_down"
	CmdMoveLeft    Command = "move_left"
	CmdMoveRight   Command = "move_right"
	CmdFirstRow    Command = "first_row"
	CmdLastRow     Command = "last_row"
	CmdPageUp      Command = "page_up"
	CmdPageDown    Command = "page_down"
	CmdFirstColumn Command = "first_column"
	CmdLastColumn  Command = "last_column"

	CmdEditCell Command = "edit_cell"

	CmdQuickFilter     Command = "quick_filter"
	CmdNextKeyColumn   Command = "next_key_column"
	CmdPrevKeyColumn   Command = "prev_key_column"
	CmdSelectKeyColumn Command = "select_key_column"
	CmdValueMenu       Command = "value_menu"
	CmdClearFilters    Command = "clear_filters"

	CmdSortAscending  Command = "sort_ascending"
	CmdSortDescending Command = "sort_descending"
	CmdInsertRow      Command = "insert_row"
	CmdDeleteRow      Command = "delete_row"

	CmdSave   Command = "save"
	CmdSaveAs Command = "save_as"
	CmdOpen   Command = "open"
	CmdReload Command = "reload"

	CmdToggleHelp Command = "toggle_help"
	CmdQuit       Command = "quit"
)

// Commands shared by prompts and menus
const (
	CmdConfirm  Command = "confirm"
	CmdCancel   Command = "cancel"
	CmdMenuUp   Command = "menu_up"
	CmdMenuDown Command = "menu_down"
)

// Modifier represents keyboard modifiers (Ctrl, Alt, Shift).
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. Rune keys use tea.KeyRunes and
	// set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return prefix + "space"
	}
	return prefix + string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name  string
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	var result []KeyBinding
	for _, binding := range mb.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// GetCategories returns all unique categories in a mode's bindings, in
// declaration order.
func (km *Keymap) GetCategories(mode Mode) []string {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var categories []string
	for _, binding := range mb.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// HelpEntry is one line of the help overlay.
type HelpEntry struct {
	Keys        []string
	Description string
}

// Help groups a mode's bindings by category, merging bindings that share a
// command into a single entry.
func (km *Keymap) Help(mode Mode) map[string][]HelpEntry {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	result := make(map[string][]HelpEntry)
	index := make(map[Command]int)
	for _, binding := range mb.Bindings {
		cat := binding.Category
		if cat == "" {
			cat = "Other"
		}
		if i, ok := index[binding.Command]; ok {
			entries := result[cat]
			entries[i].Keys = append(entries[i].Keys, binding.String())
			continue
		}
		index[binding.Command] = len(result[cat])
		result[cat] = append(result[cat], HelpEntry{
			Keys:        []string{binding.String()},
			Description: binding.Description,
		})
	}
	return result
}
