// Package table holds the memory-resident tabular data behind the editor: an
// ordered set of named, typed columns plus the secondary label row read from
// the file's first line.
//
// Rows have no identity beyond their position. Every mutation publishes an
// event on the store's bus so dependent views can follow; structural changes
// are bracketed by a before and an after event.
package table

import (
	"slices"
	"strconv"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
)

// DefaultPlaceholder fills every cell of an inserted row.
const DefaultPlaceholder = "NoData"

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Kind  Kind
	cells []Value
	bold  bool
}

// Store owns the table data. It is not safe for concurrent use; the editor
// drives it from a single goroutine.
type Store struct {
	columns     []*Column
	rows        int
	label       []string
	placeholder string
	bus         *event.Bus
}

// Option configures a Store.
type Option func(*Store)

// WithBus sets the bus that receives change notifications.
func WithBus(bus *event.Bus) Option {
	return func(s *Store) { s.bus = bus }
}

// WithPlaceholder overrides the text used for cells of inserted rows.
func WithPlaceholder(p string) Option {
	return func(s *Store) { s.placeholder = p }
}

// WithLabel sets the secondary label row written before the header on save.
func WithLabel(label []string) Option {
	return func(s *Store) { s.label = slices.Clone(label) }
}

// New creates an empty store with the given columns.
func New(names []string, kinds []Kind, opts ...Option) (*Store, error) {
	if len(kinds) != len(names) {
		return nil, errors.NewValidationError("column names and kinds differ in length").
			WithValue(len(kinds))
	}
	s := &Store{placeholder: DefaultPlaceholder}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if seen[name] {
			return nil, errors.NewTableError("cannot create table: "+strconv.Quote(name), errors.ErrDuplicateColumn).
				WithColumn(i)
		}
		seen[name] = true
		s.columns = append(s.columns, &Column{Name: name, Kind: kinds[i]})
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.label == nil {
		s.label = slices.Clone(names)
	}
	return s, nil
}

// FromRecords builds a store from a header and text records, inferring each
// column's kind. Every record must have exactly len(header) fields; empty
// fields become missing cells.
func FromRecords(header []string, records [][]string, opts ...Option) (*Store, error) {
	kinds := make([]Kind, len(header))
	for c := range header {
		col := make([]string, 0, len(records))
		for _, rec := range records {
			if c < len(rec) {
				col = append(col, rec[c])
			}
		}
		kinds[c] = InferKind(col)
	}
	return FromTypedRecords(header, kinds, records, opts...)
}

// FromTypedRecords builds a store with declared column kinds. Fields that do
// not parse as their column's kind are kept as text.
func FromTypedRecords(header []string, kinds []Kind, records [][]string, opts ...Option) (*Store, error) {
	for r, rec := range records {
		if len(rec) != len(header) {
			return nil, errors.NewTableError("record has wrong number of fields", errors.ErrInvalidInput).
				WithRow(r)
		}
	}

	s, err := New(header, kinds, opts...)
	if err != nil {
		return nil, err
	}
	for c, col := range s.columns {
		col.cells = make([]Value, len(records))
		for r, rec := range records {
			col.cells[r] = parseLoaded(col.Kind, rec[c])
		}
	}
	s.rows = len(records)
	return s, nil
}

// RowCount returns the number of rows.
func (s *Store) RowCount() int { return s.rows }

// ColumnCount returns the number of columns.
func (s *Store) ColumnCount() int { return len(s.columns) }

// ColumnNames returns the column names in order.
func (s *Store) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnName returns the name of column col.
func (s *Store) ColumnName(col int) (string, error) {
	if err := s.checkColumn(col); err != nil {
		return "", err
	}
	return s.columns[col].Name, nil
}

// ColumnIndex finds a column by exact name.
func (s *Store) ColumnIndex(name string) (int, bool) {
	for i, c := range s.columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Kind returns the declared kind of column col.
func (s *Store) Kind(col int) (Kind, error) {
	if err := s.checkColumn(col); err != nil {
		return KindText, err
	}
	return s.columns[col].Kind, nil
}

// Label returns a copy of the secondary label row.
func (s *Store) Label() []string { return slices.Clone(s.label) }

// Placeholder returns the text used for inserted rows.
func (s *Store) Placeholder() string { return s.placeholder }

// RowLabel returns the vertical header text for row. Rows are renumbered after
// every structural change so the label is the position.
func (s *Store) RowLabel(row int) string { return strconv.Itoa(row) }

// Cell returns the value at (row, col).
func (s *Store) Cell(row, col int) (Value, error) {
	if err := s.checkCell(row, col); err != nil {
		return Value{}, err
	}
	return s.columns[col].cells[row], nil
}

// Text returns the rendered text at (row, col).
func (s *Store) Text(row, col int) (string, error) {
	v, err := s.Cell(row, col)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// SetCell coerces raw to the column's kind and stores it. On a coercion
// failure the cell keeps its previous value. row == RowCount() is out of
// range; use InsertRow to append.
func (s *Store) SetCell(row, col int, raw string) error {
	if err := s.checkCell(row, col); err != nil {
		return err
	}
	column := s.columns[col]
	v, err := Coerce(column.Kind, raw)
	if err != nil {
		return errors.NewTableError("cannot set cell in "+column.Kind.String()+" column "+strconv.Quote(column.Name), err).
			WithRow(row).WithColumn(col)
	}
	column.cells[row] = v
	s.bus.Publish(event.NewCellChangedEvent(row, col))
	return nil
}

// InsertRow inserts a placeholder row at position at, shifting later rows
// down. at may equal RowCount() to append.
func (s *Store) InsertRow(at int) error {
	if at < 0 || at > s.rows {
		return errors.NewTableError("cannot insert row", errors.ErrRowOutOfRange).WithRow(at)
	}

	s.bus.Publish(event.NewRowsEvent(event.TypeRowsInserting, at, at))
	for _, c := range s.columns {
		c.cells = slices.Insert(c.cells, at, Text(s.placeholder))
	}
	s.rows++
	s.bus.Publish(event.NewRowsEvent(event.TypeRowsInserted, at, at))
	return nil
}

// RemoveRow deletes the row at position at. Later rows move up by one.
func (s *Store) RemoveRow(at int) error {
	if s.rows == 0 {
		return errors.NewTableError("cannot remove row", errors.ErrTableEmpty).WithRow(at)
	}
	if at < 0 || at >= s.rows {
		return errors.NewTableError("cannot remove row", errors.ErrRowOutOfRange).WithRow(at)
	}

	s.bus.Publish(event.NewRowsEvent(event.TypeRowsRemoving, at, at))
	for _, c := range s.columns {
		c.cells = slices.Delete(c.cells, at, at+1)
	}
	s.rows--
	s.bus.Publish(event.NewRowsEvent(event.TypeRowsRemoved, at, at))
	return nil
}

// SortBy stably reorders every row by the values of column col. Numbers sort
// numerically and before any text; text sorts lexicographically; missing
// cells are always placed last regardless of direction.
func (s *Store) SortBy(col int, ascending bool) error {
	if err := s.checkColumn(col); err != nil {
		return err
	}

	s.bus.Publish(event.NewLayoutEvent(event.TypeLayoutChanging))

	key := s.columns[col].cells
	perm := make([]int, s.rows)
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int {
		va, vb := key[a], key[b]
		switch {
		case va.IsMissing() && vb.IsMissing():
			return 0
		case va.IsMissing():
			return 1
		case vb.IsMissing():
			return -1
		}
		if ascending {
			return compareValues(va, vb)
		}
		return compareValues(vb, va)
	})

	for _, c := range s.columns {
		sorted := make([]Value, s.rows)
		for i, p := range perm {
			sorted[i] = c.cells[p]
		}
		c.cells = sorted
	}

	s.bus.Publish(event.NewLayoutEvent(event.TypeLayoutChanged))
	return nil
}

// SetColumnEmphasis sets the bold header flag of column col.
func (s *Store) SetColumnEmphasis(col int, bold bool) error {
	if err := s.checkColumn(col); err != nil {
		return err
	}
	s.columns[col].bold = bold
	s.bus.Publish(event.NewHeaderChangedEvent(col, col))
	return nil
}

// Emphasis reports whether column col's header is bold. Out-of-range columns
// are never bold.
func (s *Store) Emphasis(col int) bool {
	if col < 0 || col >= len(s.columns) {
		return false
	}
	return s.columns[col].bold
}

// DistinctValues returns the sorted set of rendered texts in column col.
func (s *Store) DistinctValues(col int) ([]string, error) {
	if err := s.checkColumn(col); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, v := range s.columns[col].cells {
		seen[v.String()] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	slices.Sort(values)
	return values, nil
}

// Records returns every row rendered as text, in row order.
func (s *Store) Records() [][]string {
	out := make([][]string, s.rows)
	for r := range out {
		rec := make([]string, len(s.columns))
		for c, col := range s.columns {
			rec[c] = col.cells[r].String()
		}
		out[r] = rec
	}
	return out
}

func (s *Store) checkColumn(col int) error {
	if col < 0 || col >= len(s.columns) {
		return errors.NewTableError("no such column", errors.ErrColumnOutOfRange).WithColumn(col)
	}
	return nil
}

func (s *Store) checkCell(row, col int) error {
	if err := s.checkColumn(col); err != nil {
		return err
	}
	if row < 0 || row >= s.rows {
		return errors.NewTableError("no such row", errors.ErrRowOutOfRange).WithRow(row).WithColumn(col)
	}
	return nil
}
