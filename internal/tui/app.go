// Package tui is the interactive grid editor built on bubbletea.
package tui

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cairos/internal/document"
	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
	"github.com/Iron-Ham/cairos/internal/logging"
	"github.com/Iron-Ham/cairos/internal/watch"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	doc     *document.Document
	logger  *logging.Logger

	watchFile bool
	mu        sync.Mutex
	watcher   *watch.Watcher
	subIDs    []string
}

// AppOptions configure an App.
type AppOptions struct {
	Model Options
	// WatchFile reports external changes to the open file.
	WatchFile bool
}

// New creates a new TUI application editing doc
func New(doc *document.Document, opts AppOptions) *App {
	logger := opts.Model.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &App{
		model:     NewModel(doc, opts.Model),
		doc:       doc,
		logger:    logger.WithComponent("app"),
		watchFile: opts.WatchFile,
	}
}

// Run starts the TUI application and blocks until it exits
func (a *App) Run() error {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-sigChan; ok && a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	if a.watchFile {
		a.subIDs = a.doc.Bus().SubscribeMany(a.onDocumentEvent,
			event.TypeDocumentOpened,
			event.TypeDocumentSaved,
		)
		if path := a.doc.Path(); path != "" {
			a.watch(path)
		}
	}

	_, err := a.program.Run()

	for _, id := range a.subIDs {
		a.doc.Bus().Unsubscribe(id)
	}
	a.subIDs = nil
	a.stopWatch()
	signal.Stop(sigChan)
	close(sigChan)

	return err
}

// onDocumentEvent keeps the watcher on the document's file. Saves through
// the editor are recorded so they are not reported as external changes.
func (a *App) onDocumentEvent(e event.Event) {
	de, ok := e.(event.DocumentEvent)
	if !ok {
		return
	}

	a.mu.Lock()
	w := a.watcher
	a.mu.Unlock()

	if e.EventType() == event.TypeDocumentSaved && w != nil && samePath(w.Path(), de.Path) {
		w.MarkSynced()
		return
	}
	a.watch(de.Path)
}

// watch replaces the current watcher with one on path.
func (a *App) watch(path string) {
	a.stopWatch()

	w, err := watch.New(path, func(p string) {
		if a.program != nil {
			a.program.Send(changedOnDiskMsg{path: p})
		}
	}, watch.WithLogger(a.logger))
	if err != nil {
		a.logger.Warn("cannot watch file", "path", path, "error", err.Error())
		if a.program != nil {
			// Send blocks until the event loop reads it.
			go a.program.Send(errMsg{err: errors.NewFileError("cannot watch file for changes", err).WithPath(path)})
		}
		return
	}
	w.Start()

	a.mu.Lock()
	a.watcher = w
	a.mu.Unlock()
}

func (a *App) stopWatch() {
	a.mu.Lock()
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}

func samePath(a, b string) bool {
	absB, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return filepath.Clean(a) == absB
}
