package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatched(t *testing.T) (string, chan string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("l\na\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, make(chan string, 4)
}

func TestWatcher_ReportsExternalWrite(t *testing.T) {
	path, changes := newWatched(t)

	w, err := New(path, func(p string) { changes <- p }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.Start()

	if err := os.WriteFile(path, []byte("l\na\n1\n2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		if got != w.Path() {
			t.Errorf("changed path = %q, want %q", got, w.Path())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	path, changes := newWatched(t)

	w, err := New(path, func(p string) { changes <- p }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	w.Start()

	other := filepath.Join(filepath.Dir(path), "other.csv")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changes:
		t.Errorf("unexpected change for %q", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MarkSyncedSuppressesOwnSave(t *testing.T) {
	path, _ := newWatched(t)

	calls := 0
	w, err := New(path, func(string) { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("l\na\n1\n2\n3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.MarkSynced()
	w.check()
	if calls != 0 {
		t.Errorf("synced state should not be reported, calls = %d", calls)
	}

	if err := os.WriteFile(path, []byte("l\na\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w.check()
	w.check()
	if calls != 1 {
		t.Errorf("a change should be reported once, calls = %d", calls)
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path, _ := newWatched(t)
	w, err := New(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Start()
	w.Stop()
	w.Stop()
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "data.csv"), nil)
	if err == nil {
		t.Error("New() should fail when the directory does not exist")
	}
}
