// Package event provides the synchronous notification bus that connects the
// table store, the filter set, the filtered view and the TUI.
//
// The store never calls the view directly. It publishes events and the view
// (and any other observer) reacts to them:
//
//   - [CellChangedEvent]: one cell was written
//   - [RowsEvent]: rows.inserting / rows.inserted / rows.removing / rows.removed,
//     always published as a before/after pair around the mutation
//   - [LayoutEvent]: layout.changing / layout.changed around a sort
//   - [HeaderChangedEvent]: column emphasis changed
//   - [FiltersChangedEvent]: a filter entry was set or cleared
//   - [DocumentEvent]: a file was opened, saved, or modified by another program
//
// # Thread Safety
//
// [Bus] is safe for concurrent use, though the editor itself publishes from a
// single goroutine. Handlers run synchronously in the publisher's goroutine and
// a panicking handler does not prevent delivery to the others.
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeCellChanged, func(e event.Event) {
//	    changed := e.(event.CellChangedEvent)
//	    log.Printf("cell %d,%d changed", changed.Row, changed.Column)
//	})
//	bus.Publish(event.NewCellChangedEvent(0, 2))
package event
