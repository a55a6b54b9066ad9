package filter

import (
	"maps"
	"regexp"
	"slices"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
)

// Accessor returns the rendered text of a cell.
type Accessor func(row, col int) (string, error)

type entry struct {
	pattern string
	re      *regexp.Regexp
}

// Set manages the active column filters.
type Set struct {
	entries map[int]entry
	bus     *event.Bus
}

// New creates an empty Set. bus may be nil.
func New(bus *event.Bus) *Set {
	return &Set{
		entries: make(map[int]entry),
		bus:     bus,
	}
}

// Set installs pattern as the filter of column col. The pattern is compiled
// case-insensitive. An empty pattern removes the entry. An invalid pattern
// returns an error and leaves the set unchanged.
func (s *Set) Set(col int, pattern string) error {
	if col < 0 {
		return errors.NewFilterError("cannot filter", errors.ErrColumnOutOfRange).
			WithColumn(col).WithPattern(pattern)
	}
	if pattern == "" {
		s.Clear(col)
		return nil
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return errors.NewFilterError(err.Error(), errors.ErrInvalidPattern).
			WithColumn(col).WithPattern(pattern)
	}
	s.entries[col] = entry{pattern: pattern, re: re}
	s.bus.Publish(event.NewFiltersChangedEvent(col))
	return nil
}

// Clear removes the filter of column col. The change is published even when
// no entry existed so observers can resync emphasis.
func (s *Set) Clear(col int) {
	delete(s.entries, col)
	s.bus.Publish(event.NewFiltersChangedEvent(col))
}

// ClearAll removes every filter.
func (s *Set) ClearAll() {
	clear(s.entries)
	s.bus.Publish(event.NewFiltersChangedEvent(-1))
}

// Pattern returns the raw pattern of column col.
func (s *Set) Pattern(col int) (string, bool) {
	e, ok := s.entries[col]
	return e.pattern, ok
}

// Has reports whether column col is filtered.
func (s *Set) Has(col int) bool {
	_, ok := s.entries[col]
	return ok
}

// Columns returns the filtered column indices in ascending order.
func (s *Set) Columns() []int {
	return slices.Sorted(maps.Keys(s.entries))
}

// Len returns the number of active filters.
func (s *Set) Len() int { return len(s.entries) }

// Matches reports whether row passes every filter. Filters on columns at or
// beyond columnCount are ignored.
func (s *Set) Matches(row int, cell Accessor, columnCount int) bool {
	for col, e := range s.entries {
		if col >= columnCount {
			continue
		}
		text, err := cell(row, col)
		if err != nil {
			return false
		}
		if !e.re.MatchString(text) {
			return false
		}
	}
	return true
}

// ExactPattern returns a pattern matching exactly value, ignoring case.
func ExactPattern(value string) string {
	return "^" + regexp.QuoteMeta(value) + "$"
}
