package tui

import (
	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
)

// changedOnDiskMsg is sent by the file watcher when another program
// modifies the open file
type changedOnDiskMsg struct {
	path string
}

// errMsg wraps an error for display in the status line
type errMsg struct {
	err error
}

func newChangedOnDiskEvent(path string) event.DocumentEvent {
	return event.NewDocumentEvent(event.TypeChangedOnDisk, path)
}

func userMessage(err error) string {
	return errors.UserMessage(err)
}
