package refs

import "github.com/wippyai/jni-runtime/types"

// EventType is a reference lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDeleted
	EventDuplicateDelete
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDeleted:
		return "deleted"
	case EventDuplicateDelete:
		return "duplicate-delete"
	default:
		return "unknown"
	}
}

// Event describes one reference lifecycle transition.
type Event struct {
	Handle types.Object
	Class  types.RefType
	Type   EventType
}

// Observer receives reference lifecycle events.
type Observer interface {
	OnRefEvent(Event)
}
