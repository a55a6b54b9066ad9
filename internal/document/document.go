// Package document ties one table, its filters and its filtered view to a
// file on disk. Opening a file swaps all three at once so nothing keeps
// column indices from the previous table.
package document

import (
	"github.com/Iron-Ham/cairos/internal/csvio"
	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
	"github.com/Iron-Ham/cairos/internal/filter"
	"github.com/Iron-Ham/cairos/internal/logging"
	"github.com/Iron-Ham/cairos/internal/table"
	"github.com/Iron-Ham/cairos/internal/view"
)

// Options configure how documents are read and written.
type Options struct {
	// Placeholder fills inserted rows. Empty means table.DefaultPlaceholder.
	Placeholder string
	// Delimiter is used for reading (csvio.Auto sniffs) and for saving a
	// document that was never loaded from a file.
	Delimiter rune
	Logger    *logging.Logger
}

// Document is the editor's open file. It is driven from a single goroutine.
type Document struct {
	bus    *event.Bus
	opts   Options
	logger *logging.Logger
	subIDs []string

	store   *table.Store
	filters *filter.Set
	view    *view.View

	path  string
	delim rune
	dirty bool
}

// New creates an unsaved document holding the sample sites table.
func New(bus *event.Bus, opts Options) (*Document, error) {
	if bus == nil {
		bus = event.NewBus()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	d := &Document{
		bus:    bus,
		opts:   opts,
		logger: logger.WithComponent("document"),
		delim:  opts.Delimiter,
	}
	if d.delim == csvio.Auto {
		d.delim = ','
	}

	store, err := sampleStore(d.tableOptions()...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build sample table")
	}
	d.install(store)

	d.subIDs = bus.SubscribeMany(func(event.Event) { d.dirty = true },
		event.TypeCellChanged,
		event.TypeRowsInserted,
		event.TypeRowsRemoved,
		event.TypeLayoutChanged,
	)
	return d, nil
}

func sampleStore(opts ...table.Option) (*table.Store, error) {
	return table.FromTypedRecords(
		[]string{"site_codes", "status", "Location", "data_quality"},
		[]table.Kind{table.KindText, table.KindText, table.KindText, table.KindText},
		[][]string{
			{"01", "open", "east", "poor"},
			{"02", "open", "north", "moderate"},
			{"03", "open", "south", "high"},
			{"04", "closed", "east", "high"},
		},
		opts...,
	)
}

func (d *Document) tableOptions() []table.Option {
	opts := []table.Option{table.WithBus(d.bus)}
	if d.opts.Placeholder != "" {
		opts = append(opts, table.WithPlaceholder(d.opts.Placeholder))
	}
	return opts
}

// install replaces the store and derives a fresh filter set and view.
func (d *Document) install(store *table.Store) {
	if d.view != nil {
		d.view.Close()
	}
	d.store = store
	d.filters = filter.New(d.bus)
	d.view = view.New(store, d.filters, d.bus)
}

// Bus returns the bus all document components publish on.
func (d *Document) Bus() *event.Bus { return d.bus }

// Store returns the current table.
func (d *Document) Store() *table.Store { return d.store }

// Filters returns the current filter set.
func (d *Document) Filters() *filter.Set { return d.filters }

// View returns the current filtered view.
func (d *Document) View() *view.View { return d.view }

// Path returns the file backing the document, or "" when never saved.
func (d *Document) Path() string { return d.path }

// Delimiter returns the delimiter used when saving.
func (d *Document) Delimiter() rune { return d.delim }

// Dirty reports whether the table changed since it was opened or saved.
func (d *Document) Dirty() bool { return d.dirty }

// Open loads path and replaces the current table. On failure the document is
// left exactly as it was.
func (d *Document) Open(path string) error {
	res, err := csvio.Load(path, csvio.Options{
		Delimiter:    d.opts.Delimiter,
		Placeholder:  d.opts.Placeholder,
		TableOptions: []table.Option{table.WithBus(d.bus)},
	})
	if err != nil {
		d.logger.LogError("open failed", err, "path", path)
		return err
	}

	d.install(res.Store)
	d.path = path
	d.delim = res.Delimiter
	d.dirty = false
	d.logger.Info("opened",
		"path", path,
		"rows", res.Store.RowCount(),
		"columns", res.Store.ColumnCount(),
		"delimiter", csvio.DelimiterName(res.Delimiter),
	)
	d.bus.Publish(event.NewDocumentEvent(event.TypeDocumentOpened, path))
	return nil
}

// Save writes the table back to its file.
func (d *Document) Save() error {
	if d.path == "" {
		return errors.NewFileError("document has never been saved", errors.ErrNoPath)
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the table to path, which becomes the document's file.
func (d *Document) SaveAs(path string) error {
	if path == "" {
		return errors.NewFileError("no file name given", errors.ErrNoPath)
	}
	if err := csvio.Save(path, d.store, d.delim); err != nil {
		d.logger.LogError("save failed", err, "path", path)
		return err
	}
	d.path = path
	d.dirty = false
	d.logger.Info("saved", "path", path, "rows", d.store.RowCount())
	d.bus.Publish(event.NewDocumentEvent(event.TypeDocumentSaved, path))
	return nil
}

// Close detaches the document from the bus.
func (d *Document) Close() {
	d.view.Close()
	for _, id := range d.subIDs {
		d.bus.Unsubscribe(id)
	}
	d.subIDs = nil
}
