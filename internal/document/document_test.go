package document

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Iron-Ham/cairos/internal/errors"
	"github.com/Iron-Ham/cairos/internal/event"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestDocument(t *testing.T, bus *event.Bus, opts Options) *Document {
	t.Helper()
	d, err := New(bus, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func TestNew_SampleTable(t *testing.T) {
	d := newTestDocument(t, nil, Options{})
	defer d.Close()

	s := d.Store()
	if got := s.ColumnNames(); !slices.Equal(got, []string{"site_codes", "status", "Location", "data_quality"}) {
		t.Errorf("ColumnNames() = %v", got)
	}
	if txt, _ := s.Text(0, 0); txt != "01" {
		t.Errorf("site code = %q, want %q", txt, "01")
	}
	if d.View().RowCount() != 4 {
		t.Errorf("View().RowCount() = %d", d.View().RowCount())
	}
	if d.Path() != "" || d.Dirty() {
		t.Errorf("new document: path=%q dirty=%v", d.Path(), d.Dirty())
	}
	if d.Delimiter() != ',' {
		t.Errorf("Delimiter() = %q", d.Delimiter())
	}
}

func TestDirtyTracking(t *testing.T) {
	d := newTestDocument(t, event.NewBus(), Options{})
	defer d.Close()

	if err := d.Store().SetCell(0, 1, "closed"); err != nil {
		t.Fatal(err)
	}
	if !d.Dirty() {
		t.Error("edit should mark the document dirty")
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := d.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if d.Dirty() {
		t.Error("save should clear dirty")
	}

	// Filtering is not a data change.
	_ = d.View().FilterByValue(1, "open")
	if d.Dirty() {
		t.Error("filter change should not mark the document dirty")
	}
}

func TestSave_WithoutPath(t *testing.T) {
	d := newTestDocument(t, nil, Options{})
	defer d.Close()

	if err := d.Save(); !errors.Is(err, errors.ErrNoPath) {
		t.Errorf("Save() error = %v, want ErrNoPath", err)
	}
	if err := d.SaveAs(""); !errors.Is(err, errors.ErrNoPath) {
		t.Errorf("SaveAs(\"\") error = %v, want ErrNoPath", err)
	}
}

func TestOpen_ResetsFiltersAndView(t *testing.T) {
	bus := event.NewBus()
	d := newTestDocument(t, bus, Options{})
	defer d.Close()

	_ = d.View().SetKeyColumn(2)
	_ = d.View().SetQuickFilter("east")
	_ = d.View().FilterByValue(3, "high")
	oldView := d.View()
	subsBefore := bus.SubscriptionCount()

	var opened []string
	bus.Subscribe(event.TypeDocumentOpened, func(e event.Event) {
		opened = append(opened, e.(event.DocumentEvent).Path)
	})

	path := writeFile(t, "two.csv", "units;kg\nname;weight\nbolt;2\nnut;1\n")
	if err := d.Open(path); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if d.View() == oldView {
		t.Error("Open should build a new view")
	}
	if d.Filters().Len() != 0 {
		t.Errorf("filters should be reset, Len() = %d", d.Filters().Len())
	}
	if d.View().QuickFilter() != "" || d.View().KeyColumn() != 0 {
		t.Errorf("quick filter = %q key = %d, want reset", d.View().QuickFilter(), d.View().KeyColumn())
	}
	if d.View().RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", d.View().RowCount())
	}
	if d.Delimiter() != ';' {
		t.Errorf("Delimiter() = %q, want ';'", d.Delimiter())
	}
	if d.Path() != path || d.Dirty() {
		t.Errorf("path=%q dirty=%v", d.Path(), d.Dirty())
	}
	if !slices.Equal(opened, []string{path}) {
		t.Errorf("opened events = %v", opened)
	}
	// The old view must no longer be subscribed; one new subscription was added above.
	if got := bus.SubscriptionCount(); got != subsBefore+1 {
		t.Errorf("SubscriptionCount() = %d, want %d", got, subsBefore+1)
	}

	// The new store publishes on the document bus, so the view follows edits.
	if err := d.View().FilterByValue(0, "nut"); err != nil {
		t.Fatal(err)
	}
	if err := d.Store().SetCell(0, 0, "nut"); err != nil {
		t.Fatal(err)
	}
	if d.View().RowCount() != 2 {
		t.Errorf("RowCount() after edit = %d, want 2", d.View().RowCount())
	}
}

func TestOpen_FailureKeepsDocument(t *testing.T) {
	d := newTestDocument(t, nil, Options{})
	defer d.Close()
	_ = d.View().FilterByValue(1, "open")
	store := d.Store()

	path := writeFile(t, "bad.csv", "label\na,a\n1,2\n")
	err := d.Open(path)
	if !errors.Is(err, errors.ErrMalformedFile) {
		t.Fatalf("Open() error = %v, want ErrMalformedFile", err)
	}
	if d.Store() != store || d.Filters().Len() != 1 || d.Path() != "" {
		t.Error("failed open must leave the document untouched")
	}
	if d.View().RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", d.View().RowCount())
	}
}

func TestSaveThenOpen_RoundTrip(t *testing.T) {
	d := newTestDocument(t, nil, Options{Placeholder: "TBD"})
	defer d.Close()

	if err := d.Store().InsertRow(4); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sites.csv")
	if err := d.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	want := d.Store().Records()

	if err := d.Open(path); err != nil {
		t.Fatal(err)
	}
	got := d.Store().Records()
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("row %d = %v, want %v", i, got[i], want[i])
		}
	}
	if d.Store().Placeholder() != "TBD" {
		t.Errorf("Placeholder() = %q", d.Store().Placeholder())
	}
}
