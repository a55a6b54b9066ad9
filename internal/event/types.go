package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "cell.changed", "rows.inserted").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeCellChanged    = "cell.changed"
	TypeRowsInserting  = "rows.inserting"
	TypeRowsInserted   = "rows.inserted"
	TypeRowsRemoving   = "rows.removing"
	TypeRowsRemoved    = "rows.removed"
	TypeLayoutChanging = "layout.changing"
	TypeLayoutChanged  = "layout.changed"
	TypeHeaderChanged  = "header.changed"
	TypeFiltersChanged = "filters.changed"
	TypeDocumentOpened = "document.opened"
	TypeDocumentSaved  = "document.saved"
	TypeChangedOnDisk  = "document.changed_on_disk"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Table Events
// -----------------------------------------------------------------------------

// CellChangedEvent is emitted after a single cell was written.
type CellChangedEvent struct {
	baseEvent
	Row    int
	Column int
}

// NewCellChangedEvent creates a CellChangedEvent.
func NewCellChangedEvent(row, col int) CellChangedEvent {
	return CellChangedEvent{
		baseEvent: newBaseEvent(TypeCellChanged),
		Row:       row,
		Column:    col,
	}
}

// RowsEvent brackets a structural change. The "inserting"/"removing" variant is
// published before the store mutates and the "inserted"/"removed" variant after.
// First and Last are inclusive store row positions.
type RowsEvent struct {
	baseEvent
	First int
	Last  int
}

// NewRowsEvent creates a RowsEvent of the given type.
func NewRowsEvent(eventType string, first, last int) RowsEvent {
	return RowsEvent{
		baseEvent: newBaseEvent(eventType),
		First:     first,
		Last:      last,
	}
}

// LayoutEvent announces a full reordering of rows (e.g. after a sort).
type LayoutEvent struct {
	baseEvent
}

// NewLayoutEvent creates a LayoutEvent; eventType is TypeLayoutChanging or TypeLayoutChanged.
func NewLayoutEvent(eventType string) LayoutEvent {
	return LayoutEvent{baseEvent: newBaseEvent(eventType)}
}

// HeaderChangedEvent is emitted when header presentation metadata changes.
type HeaderChangedEvent struct {
	baseEvent
	First int
	Last  int
}

// NewHeaderChangedEvent creates a HeaderChangedEvent.
func NewHeaderChangedEvent(first, last int) HeaderChangedEvent {
	return HeaderChangedEvent{
		baseEvent: newBaseEvent(TypeHeaderChanged),
		First:     first,
		Last:      last,
	}
}

// FiltersChangedEvent is emitted after a filter entry was set or cleared.
// Column is -1 when every entry was cleared at once.
type FiltersChangedEvent struct {
	baseEvent
	Column int
}

// NewFiltersChangedEvent creates a FiltersChangedEvent.
func NewFiltersChangedEvent(col int) FiltersChangedEvent {
	return FiltersChangedEvent{
		baseEvent: newBaseEvent(TypeFiltersChanged),
		Column:    col,
	}
}

// -----------------------------------------------------------------------------
// Document Events
// -----------------------------------------------------------------------------

// DocumentEvent carries the path of a document that was opened, saved or
// changed on disk.
type DocumentEvent struct {
	baseEvent
	Path string
}

// NewDocumentEvent creates a DocumentEvent of the given type.
func NewDocumentEvent(eventType, path string) DocumentEvent {
	return DocumentEvent{
		baseEvent: newBaseEvent(eventType),
		Path:      path,
	}
}
