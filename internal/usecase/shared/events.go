package shared

import (
	"gigboard-notify/internal/domain/notification"

	"github.com/google/uuid"
)

type EventKind int

const (
	// EventCreated carries a full notification that became visible.
	EventCreated EventKind = iota + 1
	// EventUpdated carries a change to an existing notification's read flag.
	EventUpdated
	// EventConnected reports the subscription is delivering.
	EventConnected
	// EventDisconnected reports the subscription was lost. Err holds the cause.
	EventDisconnected
	// EventUpdatedBatch carries the read changes of one bulk write in Updates.
	EventUpdatedBatch
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventUpdated:
		return "updated"
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventUpdatedBatch:
		return "updated_batch"
	default:
		return "unknown"
	}
}

// ReadUpdate is the payload of EventUpdated and one entry of
// EventUpdatedBatch.
type ReadUpdate struct {
	ID     uuid.UUID
	UserID uuid.UUID // may be Nil when the producer omits it
	IsRead bool
}

type Event struct {
	Kind         EventKind
	Notification notification.Notification
	Update       ReadUpdate
	Updates      []ReadUpdate
	Err          error
}

func Created(n notification.Notification) Event {
	return Event{Kind: EventCreated, Notification: n}
}

func Updated(id, userID uuid.UUID, isRead bool) Event {
	return Event{Kind: EventUpdated, Update: ReadUpdate{ID: id, UserID: userID, IsRead: isRead}}
}

// UpdatedBatch folds the same read change for many ids of one user into a
// single event.
func UpdatedBatch(userID uuid.UUID, ids []uuid.UUID, isRead bool) Event {
	updates := make([]ReadUpdate, len(ids))
	for i, id := range ids {
		updates[i] = ReadUpdate{ID: id, UserID: userID, IsRead: isRead}
	}
	return Event{Kind: EventUpdatedBatch, Updates: updates}
}

func Connected() Event {
	return Event{Kind: EventConnected}
}

func Disconnected(err error) Event {
	return Event{Kind: EventDisconnected, Err: err}
}
