package watcher

import "time"

const (
	EventCreated  EventType = "created"
	EventModified EventType = "modified"
	EventRemoved  EventType = "removed"
)

type EventType string

// Event describes one change to a direct child of the watched directory.
type Event struct {
	Name string // base name of the affected entry, not the watched root
	Type EventType
	Time time.Time
}

// Message is a single item from the watch loop. Exactly one field is set:
// a change event, a resync request after the OS dropped events, or a
// terminal error that ends the session.
type Message struct {
	Event  *Event
	Resync bool
	Err    error
}
