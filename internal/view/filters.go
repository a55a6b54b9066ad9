package view

import (
	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/filter"
)

// KeyColumn returns the column the quick filter applies to.
func (v *View) KeyColumn() int { return v.keyColumn }

// QuickFilter returns the current quick filter text.
func (v *View) QuickFilter() string { return v.quickText }

// SetQuickFilter applies text as the pattern of the key column. Empty text
// removes the key column's filter. An invalid pattern is remembered as the
// quick filter text but leaves the filters unchanged.
func (v *View) SetQuickFilter(text string) error {
	v.quickText = text
	err := v.filters.Set(v.keyColumn, text)
	if err == nil {
		v.quickApplied = text
	}
	v.syncEmphasis(v.keyColumn)
	return err
}

// SetKeyColumn moves the quick filter to column col. If the old key column's
// filter is still the one the quick filter installed it is removed; the text
// is then applied to the new column.
func (v *View) SetKeyColumn(col int) error {
	if col < 0 || col >= v.store.ColumnCount() {
		return errors.NewTableError("cannot select key column", errors.ErrColumnOutOfRange).WithColumn(col)
	}
	if col == v.keyColumn {
		return nil
	}

	old := v.keyColumn
	if p, ok := v.filters.Pattern(old); ok && v.quickApplied != "" && p == v.quickApplied {
		v.filters.Clear(old)
		v.syncEmphasis(old)
	}
	v.keyColumn = col
	v.quickApplied = ""
	if v.quickText == "" {
		return nil
	}
	return v.SetQuickFilter(v.quickText)
}

// FilterByValue keeps only rows whose column col renders exactly as value,
// ignoring case.
func (v *View) FilterByValue(col int, value string) error {
	if err := v.checkColumn(col); err != nil {
		return err
	}
	if err := v.filters.Set(col, filter.ExactPattern(value)); err != nil {
		return err
	}
	v.syncEmphasis(col)
	return nil
}

// ClearColumnFilter removes any filter on column col.
func (v *View) ClearColumnFilter(col int) error {
	if err := v.checkColumn(col); err != nil {
		return err
	}
	v.filters.Clear(col)
	v.syncEmphasis(col)
	return nil
}

// ClearFilters removes every filter and empties the quick filter text.
func (v *View) ClearFilters() {
	v.quickText = ""
	v.quickApplied = ""
	v.filters.ClearAll()
	for col := range v.store.ColumnCount() {
		v.syncEmphasis(col)
	}
}

// ValueMenu lists the choices of column col's header menu: AllLabel followed
// by each distinct value in the column.
func (v *View) ValueMenu(col int) ([]MenuItem, error) {
	values, err := v.store.DistinctValues(col)
	if err != nil {
		return nil, err
	}
	items := make([]MenuItem, 0, len(values)+1)
	items = append(items, MenuItem{
		Label: AllLabel,
		Apply: func() error { return v.ClearColumnFilter(col) },
	})
	for _, value := range values {
		items = append(items, MenuItem{
			Label: value,
			Apply: func() error { return v.FilterByValue(col, value) },
		})
	}
	return items, nil
}

// syncEmphasis bolds the header of col exactly when the column is filtered.
// A detached view also recomputes its rows here.
func (v *View) syncEmphasis(col int) {
	if v.bus == nil {
		v.Refresh()
	}
	if col < 0 || col >= v.store.ColumnCount() {
		return
	}
	if v.store.Emphasis(col) != v.filters.Has(col) {
		_ = v.store.SetColumnEmphasis(col, v.filters.Has(col))
	}
}

func (v *View) checkColumn(col int) error {
	if col < 0 || col >= v.store.ColumnCount() {
		return errors.NewTableError("no such column", errors.ErrColumnOutOfRange).WithColumn(col)
	}
	return nil
}
