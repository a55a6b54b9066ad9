// Package watch notices when the open file is changed by another program.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/cairos/internal/logging"
)

// DefaultDebounce collapses the burst of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

type fingerprint struct {
	size    int64
	modTime time.Time
}

func (f fingerprint) equal(o fingerprint) bool {
	return f.size == o.size && f.modTime.Equal(o.modTime)
}

func stat(path string) (fingerprint, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fingerprint{}, false
	}
	return fingerprint{size: info.Size(), modTime: info.ModTime()}, true
}

// Watcher reports changes to a single file. It watches the parent directory
// so replacing the file through a rename is seen too.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	onChange func(path string)
	debounce time.Duration
	logger   *logging.Logger

	mu     sync.Mutex
	synced fingerprint

	stopOnce sync.Once
	stopCh   chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New watches path. onChange runs on the watcher's goroutine.
func New(path string, onChange func(path string), opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fs:       fsw,
		path:     abs,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   logging.NopLogger(),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.MarkSynced()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// MarkSynced records the file's current state as known, so events caused by
// our own save are not reported.
func (w *Watcher) MarkSynced() {
	fp, _ := stat(w.path)
	w.mu.Lock()
	w.synced = fp
	w.mu.Unlock()
}

// Start begins delivering change notifications.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends the watch. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.fs.Close()
	})
}

func (w *Watcher) loop() {
	timer := time.NewTimer(0)
	<-timer.C
	pending := false

	for {
		select {
		case <-w.stopCh:
			timer.Stop()
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			pending = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			w.check()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watch error", "path", w.path, "error", err.Error())
		}
	}
}

// check compares the file against the last synced state and reports a
// difference once.
func (w *Watcher) check() {
	fp, _ := stat(w.path)

	w.mu.Lock()
	changed := !fp.equal(w.synced)
	if changed {
		w.synced = fp
	}
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.logger.Info("file changed on disk", "path", w.path)
		w.onChange(w.path)
	}
}
