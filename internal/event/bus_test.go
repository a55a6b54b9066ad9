package event

import (
	"sync"
	"testing"
)

func TestBus_PublishCellChanged(t *testing.T) {
	bus := NewBus()

	var got CellChangedEvent
	bus.Subscribe(TypeCellChanged, func(e Event) {
		got = e.(CellChangedEvent)
	})

	bus.Publish(NewCellChangedEvent(3, 1))

	if got.Row != 3 || got.Column != 1 {
		t.Errorf("received (%d, %d), want (3, 1)", got.Row, got.Column)
	}
	if got.EventType() != TypeCellChanged {
		t.Errorf("EventType() = %q, want %q", got.EventType(), TypeCellChanged)
	}
	if got.Timestamp().IsZero() {
		t.Error("Timestamp() should be set")
	}
}

func TestBus_BracketingOrder(t *testing.T) {
	bus := NewBus()

	var seen []string
	bus.SubscribeMany(func(e Event) {
		seen = append(seen, e.EventType())
	}, TypeRowsInserting, TypeRowsInserted)

	bus.Publish(NewRowsEvent(TypeRowsInserting, 2, 2))
	bus.Publish(NewRowsEvent(TypeRowsInserted, 2, 2))

	want := []string{TypeRowsInserting, TypeRowsInserted}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe(TypeHeaderChanged, func(e Event) {
		t.Error("handler should not be called for non-matching event type")
	})

	bus.Publish(NewLayoutEvent(TypeLayoutChanged))
}

func TestBus_NilPublish(t *testing.T) {
	var bus *Bus
	// Must not panic.
	bus.Publish(NewFiltersChangedEvent(-1))
}

func TestBus_SubscribeAllRunsAfterSpecific(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) { order = append(order, "wildcard") })
	bus.Subscribe(TypeFiltersChanged, func(e Event) { order = append(order, "specific") })

	bus.Publish(NewFiltersChangedEvent(0))

	if len(order) != 2 || order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("order = %v, want [specific wildcard]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := map[string]int{}
	id1 := bus.Subscribe(TypeCellChanged, func(e Event) { calls["first"]++ })
	bus.Subscribe(TypeCellChanged, func(e Event) { calls["second"]++ })

	if !bus.Unsubscribe(id1) {
		t.Fatal("Unsubscribe should return true for an existing subscription")
	}
	if bus.Unsubscribe(id1) {
		t.Error("second Unsubscribe should return false")
	}

	bus.Publish(NewCellChangedEvent(0, 0))

	if calls["first"] != 0 {
		t.Error("unsubscribed handler was called")
	}
	if calls["second"] != 1 {
		t.Error("remaining handler was not called")
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.SubscribeMany(func(e Event) {}, TypeRowsRemoving, TypeRowsRemoved)
	bus.SubscribeAll(func(e Event) {})

	if got := bus.SubscriptionCount(); got != 3 {
		t.Fatalf("SubscriptionCount() = %d, want 3", got)
	}

	bus.Clear()

	if got := bus.SubscriptionCount(); got != 0 {
		t.Errorf("SubscriptionCount() after Clear = %d, want 0", got)
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	bus := NewBus()

	var recovered any
	bus.OnPanic(func(e Event, r any, stack []byte) {
		recovered = r
		if len(stack) == 0 {
			t.Error("stack should be captured")
		}
	})

	calls := 0
	bus.Subscribe(TypeCellChanged, func(e Event) {
		calls++
		panic("handler panic")
	})
	bus.Subscribe(TypeCellChanged, func(e Event) {
		calls++
	})

	bus.Publish(NewCellChangedEvent(0, 0))

	if calls != 2 {
		t.Errorf("expected both handlers to run despite panic, got %d calls", calls)
	}
	if recovered != "handler panic" {
		t.Errorf("recovered = %v, want %q", recovered, "handler panic")
	}
}

func TestBus_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			id := bus.Subscribe(TypeCellChanged, func(e Event) {})
			bus.Unsubscribe(id)
		})
	}
	wg.Wait()

	if got := bus.SubscriptionCount(); got != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", got)
	}
}

func TestBus_UniqueIDs(t *testing.T) {
	bus := NewBus()

	ids := make(map[string]bool)
	for range 100 {
		id := bus.Subscribe(TypeCellChanged, func(e Event) {})
		if ids[id] {
			t.Errorf("duplicate subscription ID: %s", id)
		}
		ids[id] = true
	}
}
