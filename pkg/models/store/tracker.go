package store

import "time"

// TrackerItem is a persisted workflow override, keyed by title.
type TrackerItem struct {
	Title     string
	Status    string
	UpdatedAt time.Time
}

// SignalSnapshot is one captured set of detector outputs, stored as the JSON
// wire form so schema evolution stays on the API side.
type SignalSnapshot struct {
	ID         string
	CapturedAt time.Time
	Payload    []byte
}
