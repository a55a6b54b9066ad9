// Package filter holds the per-column regular-expression filters applied to
// the table.
//
// A [Set] maps column indices to case-insensitive patterns. A row passes when
// every pattern finds a match somewhere in the rendered text of its column,
// so "ea" keeps both "east" and "Sea". Anchored patterns built with
// [ExactPattern] select a single value.
//
// # Usage
//
//	fs := filter.New(bus)
//	if err := fs.Set(1, "open"); err != nil {
//	    // invalid pattern, the set is unchanged
//	}
//	visible := fs.Matches(row, store.Text, store.ColumnCount())
//
// Setting an empty pattern removes the entry, so a Set never holds an empty
// pattern. Entries naming a column that no longer exists are skipped by
// [Set.Matches].
package filter
