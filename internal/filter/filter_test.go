package filter

import (
	"fmt"
	"slices"
	"testing"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
)

// grid is a tiny in-memory accessor: rows of rendered cell text.
type grid [][]string

func (g grid) text(row, col int) (string, error) {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return "", fmt.Errorf("no cell %d,%d", row, col)
	}
	return g[row][col], nil
}

var sites = grid{
	{"1", "open", "east", "poor"},
	{"2", "open", "north", "moderate"},
	{"3", "open", "south", "high"},
	{"4", "closed", "east", "high"},
}

func visible(s *Set, g grid) []int {
	var rows []int
	for r := range g {
		if s.Matches(r, g.text, len(g[0])) {
			rows = append(rows, r)
		}
	}
	return rows
}

func TestNew(t *testing.T) {
	s := New(nil)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if got := visible(s, sites); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("empty set should match every row, got %v", got)
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		filters map[int]string
		want    []int
	}{
		{name: "status open", filters: map[int]string{1: "open"}, want: []int{0, 1, 2}},
		{name: "open and east", filters: map[int]string{1: "open", 2: "east"}, want: []int{0}},
		{name: "case insensitive", filters: map[int]string{2: "EAST"}, want: []int{0, 3}},
		{name: "contains not equals", filters: map[int]string{2: "th"}, want: []int{1, 2}},
		{name: "alternation", filters: map[int]string{3: "poor|high"}, want: []int{0, 2, 3}},
		{name: "no match", filters: map[int]string{1: "archived"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			for col, p := range tt.filters {
				if err := s.Set(col, p); err != nil {
					t.Fatalf("Set(%d, %q) error = %v", col, p, err)
				}
			}
			if got := visible(s, sites); !slices.Equal(got, tt.want) {
				t.Errorf("visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSet_EmptyPatternRemoves(t *testing.T) {
	s := New(nil)
	_ = s.Set(2, "east")
	if err := s.Set(2, ""); err != nil {
		t.Fatal(err)
	}
	if s.Has(2) {
		t.Error("empty pattern should remove the entry")
	}
	if _, ok := s.Pattern(2); ok {
		t.Error("Pattern() should report no entry")
	}
}

func TestSet_InvalidPattern(t *testing.T) {
	s := New(nil)
	_ = s.Set(1, "open")

	err := s.Set(1, "(")
	if !errors.Is(err, errors.ErrInvalidPattern) {
		t.Fatalf("Set() error = %v, want ErrInvalidPattern", err)
	}
	var filterErr *errors.FilterError
	if !errors.As(err, &filterErr) || filterErr.Column != 1 || filterErr.Pattern != "(" {
		t.Errorf("error context = %+v", filterErr)
	}
	if p, _ := s.Pattern(1); p != "open" {
		t.Errorf("previous pattern should survive, got %q", p)
	}
}

func TestSet_NegativeColumn(t *testing.T) {
	s := New(nil)
	if err := s.Set(-1, "x"); !errors.Is(err, errors.ErrColumnOutOfRange) {
		t.Errorf("Set(-1) error = %v", err)
	}
}

func TestMatches_StaleColumnSkipped(t *testing.T) {
	s := New(nil)
	_ = s.Set(9, "anything")
	_ = s.Set(1, "closed")

	if got := visible(s, sites); !slices.Equal(got, []int{3}) {
		t.Errorf("visible = %v, want [3]", got)
	}
}

func TestExactPattern(t *testing.T) {
	s := New(nil)
	g := grid{{"a.b"}, {"axb"}, {"A.B"}, {"a.bc"}}

	if err := s.Set(0, ExactPattern("a.b")); err != nil {
		t.Fatal(err)
	}
	if got := visible(s, g); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("visible = %v, want [0 2]", got)
	}
}

func TestColumnsAndClearAll(t *testing.T) {
	s := New(nil)
	_ = s.Set(3, "high")
	_ = s.Set(0, "1")
	_ = s.Set(2, "east")

	if got := s.Columns(); !slices.Equal(got, []int{0, 2, 3}) {
		t.Errorf("Columns() = %v", got)
	}

	s.Clear(2)
	if s.Has(2) || s.Len() != 2 {
		t.Errorf("after Clear(2): Has=%v Len=%d", s.Has(2), s.Len())
	}

	s.ClearAll()
	if s.Len() != 0 {
		t.Errorf("Len() after ClearAll = %d", s.Len())
	}
}

func TestPublishesFiltersChanged(t *testing.T) {
	bus := event.NewBus()
	s := New(bus)

	var cols []int
	bus.Subscribe(event.TypeFiltersChanged, func(e event.Event) {
		cols = append(cols, e.(event.FiltersChangedEvent).Column)
	})

	_ = s.Set(1, "open")
	_ = s.Set(1, "(")
	s.Clear(1)
	s.ClearAll()

	if !slices.Equal(cols, []int{1, 1, -1}) {
		t.Errorf("published columns = %v, want [1 1 -1]", cols)
	}
}
