// Package view derives the visible, ordered subset of table rows that pass
// the active filters, and owns the two ways a user edits those filters: the
// quick filter bound to a key column and the per-column value menu.
package view

import (
	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
	"github.com/Iron-Ham/cairos/internal/filter"
	"github.com/Iron-Ham/cairos/internal/table"
)

// AllLabel is the first value menu entry; choosing it clears the column filter.
const AllLabel = "All"

// MenuItem is one entry of a column's value menu.
type MenuItem struct {
	Label string
	Apply func() error
}

// View maps view rows to store rows. The mapping is kept current by
// listening on the bus, so every caller sees the same visible rows.
type View struct {
	store   *table.Store
	filters *filter.Set
	bus     *event.Bus
	subIDs  []string

	rows []int

	keyColumn int
	quickText string
	// quickApplied is the quick filter pattern last installed on the key
	// column. It lags quickText while the text does not compile.
	quickApplied string
}

// New creates a view over store filtered by filters and computes the initial
// mapping. When bus is non-nil the view refreshes itself on store and filter
// changes until Close is called.
func New(store *table.Store, filters *filter.Set, bus *event.Bus) *View {
	v := &View{
		store:   store,
		filters: filters,
		bus:     bus,
	}
	if bus != nil {
		v.subIDs = append(v.subIDs, bus.SubscribeMany(func(event.Event) { v.Refresh() },
			event.TypeCellChanged,
			event.TypeRowsInserted,
			event.TypeRowsRemoved,
			event.TypeLayoutChanged,
			event.TypeFiltersChanged,
		)...)
	}
	v.Refresh()
	return v
}

// Close detaches the view from the bus.
func (v *View) Close() {
	if v.bus == nil {
		return
	}
	for _, id := range v.subIDs {
		v.bus.Unsubscribe(id)
	}
	v.subIDs = nil
}

// Store returns the underlying store.
func (v *View) Store() *table.Store { return v.store }

// Filters returns the filter set the view applies.
func (v *View) Filters() *filter.Set { return v.filters }

// Refresh recomputes the visible rows from scratch.
func (v *View) Refresh() {
	n := v.store.RowCount()
	cols := v.store.ColumnCount()
	rows := make([]int, 0, n)
	for r := range n {
		if v.filters.Matches(r, v.store.Text, cols) {
			rows = append(rows, r)
		}
	}
	v.rows = rows
}

// RowCount returns the number of visible rows.
func (v *View) RowCount() int { return len(v.rows) }

// Rows returns a copy of the visible store rows in order.
func (v *View) Rows() []int {
	out := make([]int, len(v.rows))
	copy(out, v.rows)
	return out
}

// StoreRow maps a view row to its store row.
func (v *View) StoreRow(viewRow int) (int, error) {
	if viewRow < 0 || viewRow >= len(v.rows) {
		return -1, errors.NewTableError("no such visible row", errors.ErrRowOutOfRange).WithRow(viewRow)
	}
	return v.rows[viewRow], nil
}

// ViewRow maps a store row to its position in the view, if visible.
func (v *View) ViewRow(storeRow int) (int, bool) {
	for i, r := range v.rows {
		if r == storeRow {
			return i, true
		}
		if r > storeRow {
			break
		}
	}
	return -1, false
}
