package table

import (
	"slices"
	"testing"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
)

func sitesStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := FromRecords(
		[]string{"site_codes", "status", "Location", "data_quality"},
		[][]string{
			{"01", "open", "east", "poor"},
			{"02", "open", "north", "moderate"},
			{"03", "open", "south", "high"},
			{"04", "closed", "east", "high"},
		},
		opts...,
	)
	if err != nil {
		t.Fatalf("FromRecords() error = %v", err)
	}
	return s
}

func column(t *testing.T, s *Store, col int) []string {
	t.Helper()
	out := make([]string, s.RowCount())
	for r := range out {
		v, err := s.Text(r, col)
		if err != nil {
			t.Fatalf("Text(%d, %d) error = %v", r, col, err)
		}
		out[r] = v
	}
	return out
}

func TestFromRecords_InfersKinds(t *testing.T) {
	s, err := FromRecords(
		[]string{"id", "score", "name", "blank"},
		[][]string{
			{"1", "1.5", "a", ""},
			{"2", "", "b", ""},
			{"3", "7", "c", ""},
		},
	)
	if err != nil {
		t.Fatalf("FromRecords() error = %v", err)
	}

	want := []Kind{KindInteger, KindFloat, KindText, KindText}
	for c, k := range want {
		got, err := s.Kind(c)
		if err != nil {
			t.Fatalf("Kind(%d) error = %v", c, err)
		}
		if got != k {
			t.Errorf("Kind(%d) = %v, want %v", c, got, k)
		}
	}

	v, _ := s.Cell(1, 1)
	if !v.IsMissing() {
		t.Errorf("empty float cell should be missing, got %q", v.String())
	}
	if txt, _ := s.Text(2, 1); txt != "7.0" {
		t.Errorf("Text(2, 1) = %q, want %q", txt, "7.0")
	}
}

func TestFromRecords_LeadingZerosAreIntegers(t *testing.T) {
	s := sitesStore(t)
	k, _ := s.Kind(0)
	if k != KindInteger {
		t.Fatalf("site_codes kind = %v, want int", k)
	}
	if got := column(t, s, 0); !slices.Equal(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("site_codes = %v", got)
	}
}

func TestNew_DuplicateColumn(t *testing.T) {
	_, err := New([]string{"a", "b", "a"}, []Kind{KindText, KindText, KindText})
	if !errors.Is(err, errors.ErrDuplicateColumn) {
		t.Fatalf("New() error = %v, want ErrDuplicateColumn", err)
	}
	var tableErr *errors.TableError
	if !errors.As(err, &tableErr) || tableErr.Column != 2 {
		t.Errorf("error should point at column 2, got %v", err)
	}
}

func TestNew_LabelDefaultsToNames(t *testing.T) {
	s, err := New([]string{"a", "b"}, []Kind{KindText, KindInteger})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Label(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Label() = %v", got)
	}

	s, err = New([]string{"a"}, []Kind{KindText}, WithLabel([]string{"units"}))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Label(); !slices.Equal(got, []string{"units"}) {
		t.Errorf("Label() = %v", got)
	}
}

func TestSetCell(t *testing.T) {
	tests := []struct {
		name    string
		col     int
		raw     string
		want    string
		wantErr error
	}{
		{name: "text", col: 1, raw: "pending", want: "pending"},
		{name: "integer", col: 0, raw: "42", want: "42"},
		{name: "integer empty is missing", col: 0, raw: "", want: ""},
		{name: "integer rejects text", col: 0, raw: "abc", want: "1", wantErr: errors.ErrCoercion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sitesStore(t)
			err := s.SetCell(0, tt.col, tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SetCell() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("SetCell() error = %v", err)
			}
			if got, _ := s.Text(0, tt.col); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetCell_OutOfRange(t *testing.T) {
	s := sitesStore(t)
	if err := s.SetCell(s.RowCount(), 0, "9"); !errors.Is(err, errors.ErrRowOutOfRange) {
		t.Errorf("row == RowCount(): error = %v, want ErrRowOutOfRange", err)
	}
	if err := s.SetCell(0, 9, "x"); !errors.Is(err, errors.ErrColumnOutOfRange) {
		t.Errorf("bad column: error = %v, want ErrColumnOutOfRange", err)
	}
}

func TestSetCell_PublishesEvent(t *testing.T) {
	bus := event.NewBus()
	s := sitesStore(t, WithBus(bus))

	var got []event.CellChangedEvent
	bus.Subscribe(event.TypeCellChanged, func(e event.Event) {
		got = append(got, e.(event.CellChangedEvent))
	})

	_ = s.SetCell(2, 3, "low")
	_ = s.SetCell(2, 0, "nope")

	if len(got) != 1 {
		t.Fatalf("got %d events, want 1 (failed coercion must not publish)", len(got))
	}
	if got[0].Row != 2 || got[0].Column != 3 {
		t.Errorf("event = (%d, %d), want (2, 3)", got[0].Row, got[0].Column)
	}
}

func TestInsertRow(t *testing.T) {
	bus := event.NewBus()
	s := sitesStore(t, WithBus(bus))

	var seen []string
	bus.SubscribeMany(func(e event.Event) {
		r := e.(event.RowsEvent)
		if r.First != 1 || r.Last != 1 {
			t.Errorf("%s range = [%d, %d], want [1, 1]", r.EventType(), r.First, r.Last)
		}
		seen = append(seen, e.EventType())
	}, event.TypeRowsInserting, event.TypeRowsInserted)

	if err := s.InsertRow(1); err != nil {
		t.Fatalf("InsertRow() error = %v", err)
	}

	if s.RowCount() != 5 {
		t.Errorf("RowCount() = %d, want 5", s.RowCount())
	}
	for c := range s.ColumnCount() {
		if got, _ := s.Text(1, c); got != DefaultPlaceholder {
			t.Errorf("Text(1, %d) = %q, want placeholder", c, got)
		}
	}
	if got := column(t, s, 2); !slices.Equal(got, []string{"east", "NoData", "north", "south", "east"}) {
		t.Errorf("Location = %v", got)
	}
	if !slices.Equal(seen, []string{event.TypeRowsInserting, event.TypeRowsInserted}) {
		t.Errorf("events = %v", seen)
	}
}

func TestInsertRow_AppendAndBounds(t *testing.T) {
	s := sitesStore(t, WithPlaceholder("?"))

	if err := s.InsertRow(s.RowCount()); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got, _ := s.Text(4, 1); got != "?" {
		t.Errorf("appended cell = %q, want %q", got, "?")
	}
	if err := s.InsertRow(-1); !errors.Is(err, errors.ErrRowOutOfRange) {
		t.Errorf("InsertRow(-1) error = %v", err)
	}
	if err := s.InsertRow(s.RowCount() + 1); !errors.Is(err, errors.ErrRowOutOfRange) {
		t.Errorf("InsertRow(past end) error = %v", err)
	}
}

func TestRemoveRow(t *testing.T) {
	s := sitesStore(t)

	if err := s.RemoveRow(0); err != nil {
		t.Fatalf("RemoveRow() error = %v", err)
	}
	if got := column(t, s, 0); !slices.Equal(got, []string{"2", "3", "4"}) {
		t.Errorf("site_codes = %v", got)
	}
	if err := s.RemoveRow(3); !errors.Is(err, errors.ErrRowOutOfRange) {
		t.Errorf("RemoveRow(3) error = %v", err)
	}

	for s.RowCount() > 0 {
		if err := s.RemoveRow(s.RowCount() - 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RemoveRow(0); !errors.Is(err, errors.ErrTableEmpty) {
		t.Errorf("RemoveRow on empty table error = %v, want ErrTableEmpty", err)
	}
}

func TestInsertThenRemoveRestoresTable(t *testing.T) {
	s := sitesStore(t)
	before := s.Records()

	if err := s.InsertRow(2); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveRow(2); err != nil {
		t.Fatal(err)
	}

	after := s.Records()
	if len(before) != len(after) {
		t.Fatalf("row count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if !slices.Equal(before[i], after[i]) {
			t.Errorf("row %d = %v, want %v", i, after[i], before[i])
		}
	}
}

func TestSortBy(t *testing.T) {
	s, err := FromRecords(
		[]string{"n", "tag"},
		[][]string{
			{"3", "c"},
			{"", "missing"},
			{"1", "a"},
			{"2", "b1"},
			{"2", "b2"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SortBy(0, true); err != nil {
		t.Fatal(err)
	}
	if got := column(t, s, 1); !slices.Equal(got, []string{"a", "b1", "b2", "c", "missing"}) {
		t.Errorf("ascending = %v", got)
	}

	if err := s.SortBy(0, false); err != nil {
		t.Fatal(err)
	}
	if got := column(t, s, 1); !slices.Equal(got, []string{"c", "b1", "b2", "a", "missing"}) {
		t.Errorf("descending = %v (ties stable, missing last)", got)
	}
}

func TestSetCell_EmptyTextSortsWithLoadedMissing(t *testing.T) {
	s, err := FromRecords(
		[]string{"id", "tag"},
		[][]string{
			{"1", "b"},
			{"2", ""},
			{"3", "a"},
			{"4", "c"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetCell(0, 1, ""); err != nil {
		t.Fatal(err)
	}
	edited, _ := s.Cell(0, 1)
	loaded, _ := s.Cell(1, 1)
	if !edited.IsMissing() || !loaded.IsMissing() {
		t.Fatalf("IsMissing() edited = %v, loaded = %v, want both true", edited.IsMissing(), loaded.IsMissing())
	}

	if err := s.SortBy(1, true); err != nil {
		t.Fatal(err)
	}
	if got := column(t, s, 0); !slices.Equal(got, []string{"3", "4", "1", "2"}) {
		t.Errorf("ids after ascending sort = %v", got)
	}
	if err := s.SortBy(1, false); err != nil {
		t.Fatal(err)
	}
	if got := column(t, s, 0); !slices.Equal(got, []string{"4", "3", "1", "2"}) {
		t.Errorf("ids after descending sort = %v", got)
	}
}

func TestSortBy_TextAndLayoutEvents(t *testing.T) {
	bus := event.NewBus()
	s := sitesStore(t, WithBus(bus))

	var seen []string
	bus.SubscribeMany(func(e event.Event) {
		seen = append(seen, e.EventType())
	}, event.TypeLayoutChanging, event.TypeLayoutChanged)

	if err := s.SortBy(2, true); err != nil {
		t.Fatal(err)
	}
	if got := column(t, s, 0); !slices.Equal(got, []string{"1", "4", "2", "3"}) {
		t.Errorf("site_codes after sort by Location = %v", got)
	}
	if !slices.Equal(seen, []string{event.TypeLayoutChanging, event.TypeLayoutChanged}) {
		t.Errorf("events = %v", seen)
	}
	if err := s.SortBy(7, true); !errors.Is(err, errors.ErrColumnOutOfRange) {
		t.Errorf("SortBy(7) error = %v", err)
	}
}

func TestSetColumnEmphasis(t *testing.T) {
	bus := event.NewBus()
	s := sitesStore(t, WithBus(bus))

	var got event.HeaderChangedEvent
	bus.Subscribe(event.TypeHeaderChanged, func(e event.Event) {
		got = e.(event.HeaderChangedEvent)
	})

	if err := s.SetColumnEmphasis(1, true); err != nil {
		t.Fatal(err)
	}
	if !s.Emphasis(1) || s.Emphasis(0) {
		t.Error("only column 1 should be bold")
	}
	if got.First != 1 || got.Last != 1 {
		t.Errorf("header event = [%d, %d], want [1, 1]", got.First, got.Last)
	}
	if s.Emphasis(99) {
		t.Error("out-of-range column should not be bold")
	}
}

func TestDistinctValues(t *testing.T) {
	s := sitesStore(t)
	got, err := s.DistinctValues(2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"east", "north", "south"}) {
		t.Errorf("DistinctValues(2) = %v", got)
	}
}

func TestColumnIndex(t *testing.T) {
	s := sitesStore(t)
	if i, ok := s.ColumnIndex("Location"); !ok || i != 2 {
		t.Errorf("ColumnIndex(Location) = %d, %v", i, ok)
	}
	if _, ok := s.ColumnIndex("location"); ok {
		t.Error("ColumnIndex should be case sensitive")
	}
	if s.RowLabel(3) != "3" {
		t.Errorf("RowLabel(3) = %q", s.RowLabel(3))
	}
}

func TestSortBy_DescendingReversesAscending(t *testing.T) {
	s := sitesStore(t)

	if err := s.SortBy(3, true); err != nil {
		t.Fatal(err)
	}
	if got := column(t, s, 3); !slices.Equal(got, []string{"high", "high", "moderate", "poor"}) {
		t.Fatalf("ascending = %v", got)
	}

	if err := s.SortBy(0, true); err != nil {
		t.Fatal(err)
	}
	asc := column(t, s, 0)
	if err := s.SortBy(0, false); err != nil {
		t.Fatal(err)
	}
	desc := column(t, s, 0)
	slices.Reverse(desc)
	if !slices.Equal(asc, desc) {
		t.Errorf("descending is not the reverse of ascending: %v vs %v", asc, desc)
	}
}

func TestFromTypedRecords(t *testing.T) {
	s, err := FromTypedRecords(
		[]string{"code", "n"},
		[]Kind{KindText, KindInteger},
		[][]string{{"01", "5"}, {"02", "x"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := column(t, s, 0); !slices.Equal(got, []string{"01", "02"}) {
		t.Errorf("text column = %v, leading zeros must survive", got)
	}
	if got := column(t, s, 1); !slices.Equal(got, []string{"5", "x"}) {
		t.Errorf("int column = %v", got)
	}

	_, err = FromTypedRecords([]string{"a"}, []Kind{KindText}, [][]string{{"1", "2"}})
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("ragged record error = %v, want ErrInvalidInput", err)
	}
	_, err = FromTypedRecords([]string{"a", "b"}, []Kind{KindText}, nil)
	if !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("kind mismatch error = %v, want ErrInvalidInput", err)
	}
}
