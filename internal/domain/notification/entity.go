package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a single inbox entry. Everything but the read flag is fixed
// at creation; WithRead returns a modified copy.
type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	typ       Type
	message   Message
	link      Link
	timestamp time.Time
	isRead    bool
}

// Draft is a validated request to create a notification. The repository
// assigns the id and timestamp.
type Draft struct {
	userID  uuid.UUID
	typ     Type
	message Message
	link    Link
}

func NewDraft(userID uuid.UUID, typ Type, message string, link *string) (Draft, error) {
	if userID == uuid.Nil {
		return Draft{}, ErrMissingUser
	}
	if typ == "" {
		return Draft{}, ErrMissingType
	}
	if !typ.IsKnown() {
		return Draft{}, ErrUnknownType
	}
	msg, err := NewMessage(message)
	if err != nil {
		return Draft{}, err
	}
	l, err := NewLink(link)
	if err != nil {
		return Draft{}, err
	}
	return Draft{userID: userID, typ: typ, message: msg, link: l}, nil
}

func (d Draft) UserID() uuid.UUID { return d.userID }
func (d Draft) Type() Type        { return d.typ }
func (d Draft) Message() Message  { return d.message }
func (d Draft) Link() Link        { return d.link }

// Materialize turns the draft into an unread notification. Adapters whose
// backend cannot assign ids pass uuid.Nil to get a fresh one.
func (d Draft) Materialize(id uuid.UUID, now time.Time) Notification {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Notification{
		id:        id,
		userID:    d.userID,
		typ:       d.typ,
		message:   d.message,
		link:      d.link,
		timestamp: now,
	}
}

// Reconstruct rebuilds a notification read from storage or the event channel.
// It is lenient about content (unknown types, over-long text) and strict about
// identity.
func Reconstruct(id, userID uuid.UUID, typ string, message string, link *string, timestamp time.Time, isRead bool) (Notification, error) {
	if id == uuid.Nil {
		return Notification{}, ErrMissingID
	}
	if userID == uuid.Nil {
		return Notification{}, ErrMissingUser
	}
	if timestamp.IsZero() {
		return Notification{}, ErrMissingTimestamp
	}
	var l Link
	if link != nil {
		l = Link{target: *link}
	}
	return Notification{
		id:        id,
		userID:    userID,
		typ:       ParseType(typ),
		message:   Message{text: message},
		link:      l,
		timestamp: timestamp,
		isRead:    isRead,
	}, nil
}

func (n Notification) ID() uuid.UUID        { return n.id }
func (n Notification) UserID() uuid.UUID    { return n.userID }
func (n Notification) Type() Type           { return n.typ }
func (n Notification) Message() Message     { return n.message }
func (n Notification) Link() Link           { return n.link }
func (n Notification) Timestamp() time.Time { return n.timestamp }
func (n Notification) IsRead() bool         { return n.isRead }

func (n Notification) WithRead(isRead bool) Notification {
	n.isRead = isRead
	return n
}

// BelongsTo reports whether the notification is owned by userID.
func (n Notification) BelongsTo(userID uuid.UUID) bool {
	return n.userID == userID
}
