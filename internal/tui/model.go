package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cairos/internal/document"
	"github.com/Iron-Ham/cairos/internal/logging"
	"github.com/Iron-Ham/cairos/internal/tui/keymap"
	"github.com/Iron-Ham/cairos/internal/tui/styles"
	"github.com/Iron-Ham/cairos/internal/view"
)

// Options configure the editor model.
type Options struct {
	Styles         *styles.Styles
	Keymap         *keymap.Keymap
	MinColumnWidth int
	MaxColumnWidth int
	Logger         *logging.Logger
}

const (
	defaultMinColumnWidth = 4
	defaultMaxColumnWidth = 24
)

// Model is the bubbletea model of the grid editor. The document and its
// view are only touched from Update.
type Model struct {
	doc    *document.Document
	keymap *keymap.Keymap
	styles *styles.Styles
	logger *logging.Logger

	minWidth int
	maxWidth int

	width  int
	height int
	ready  bool

	mode keymap.Mode

	// cursorRow is a view row; cursorCol is a store column.
	cursorRow int
	cursorCol int
	rowOffset int
	colOffset int

	input textinput.Model
	// quickBefore is the quick filter text when the prompt was opened.
	quickBefore string

	menuItems  []view.MenuItem
	menuTitle  string
	menuCursor int

	infoMessage  string
	errorMessage string
	diskChanged  bool

	// confirming is set when a command that would drop unsaved edits
	// is waiting for the same key a second time.
	confirming keymap.Command
}

// NewModel creates the editor model for doc.
func NewModel(doc *document.Document, opts Options) Model {
	if opts.Styles == nil {
		opts.Styles = styles.New(nil)
	}
	if opts.Keymap == nil {
		opts.Keymap = keymap.DefaultKeymap()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.MinColumnWidth <= 0 {
		opts.MinColumnWidth = defaultMinColumnWidth
	}
	if opts.MaxColumnWidth < opts.MinColumnWidth {
		opts.MaxColumnWidth = max(defaultMaxColumnWidth, opts.MinColumnWidth)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0

	return Model{
		doc:      doc,
		keymap:   opts.Keymap,
		styles:   opts.Styles,
		logger:   opts.Logger.WithComponent("tui"),
		minWidth: opts.MinColumnWidth,
		maxWidth: opts.MaxColumnWidth,
		mode:     keymap.ModeNormal,
		input:    ti,
	}
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode { return m.mode }

// Cursor returns the view row and store column under the cursor.
func (m Model) Cursor() (row, col int) { return m.cursorRow, m.cursorCol }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(10, m.width-30)
		m.ensureCursorVisible()
		return m, nil

	case changedOnDiskMsg:
		if msg.path == "" {
			return m, nil
		}
		m.diskChanged = true
		m.logger.Info("open file changed on disk", "path", msg.path)
		m.doc.Bus().Publish(newChangedOnDiskEvent(msg.path))
		return m, nil

	case errMsg:
		m.setError(msg.err)
		return m, nil
	}

	return m, nil
}

// handleKeypress routes a key to the handler of the current mode.
func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, bound := m.keymap.GetBinding(msg, m.mode)

	switch m.mode {
	case keymap.ModeEdit, keymap.ModeQuickFilter, keymap.ModeOpenPrompt, keymap.ModeSavePrompt:
		if bound {
			return m.handlePromptCommand(cmd)
		}
		return m.updateInput(msg)

	case keymap.ModeValueMenu, keymap.ModeColumnSelect:
		if bound {
			return m.handleMenuCommand(cmd)
		}
		return m, nil

	case keymap.ModeHelp:
		if bound && cmd == keymap.CmdCancel {
			m.mode = keymap.ModeNormal
		}
		return m, nil
	}

	if !bound {
		return m, nil
	}
	return m.handleNormalCommand(cmd)
}

func (m *Model) clearMessages() {
	m.infoMessage = ""
	m.errorMessage = ""
}

func (m *Model) setInfo(msg string) {
	m.infoMessage = msg
	m.errorMessage = ""
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.logger.LogError("command failed", err)
	m.errorMessage = userMessage(err)
	m.infoMessage = ""
}
