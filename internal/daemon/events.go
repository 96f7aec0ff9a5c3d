package daemon

import (
	"github.com/newor0599/ignis/internal/dbus"
	"github.com/newor0599/ignis/internal/model"
)

// EventKind identifies a notification lifecycle event.
type EventKind int

const (
	// EventNotified is delivered when a notification is created.
	EventNotified EventKind = iota
	// EventNewPopup is delivered when a notification is admitted as a popup.
	EventNewPopup
	// EventDismissed is delivered when a popup leaves the visible set
	// while its notification stays active.
	EventDismissed
	// EventClosed is delivered when a notification is closed and removed.
	EventClosed
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventNotified:
		return "notified"
	case EventNewPopup:
		return "new_popup"
	case EventDismissed:
		return "dismissed"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is a notification lifecycle event delivered to subscribers.
// Reason is set for EventDismissed (expired vs dismissed) and
// EventClosed.
type Event struct {
	Kind         EventKind
	Notification *model.Notification
	Reason       dbus.CloseReason
}
