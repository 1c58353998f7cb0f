//go:build unit || e2e

package builder

import (
	"time"

	"gigboard-notify/internal/domain/notification"
	reqdto "gigboard-notify/internal/handler/dto/request"

	"github.com/google/uuid"
)

type NotificationBuilder struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      notification.Type
	Message   string
	Link      *string
	Timestamp time.Time
	IsRead    bool
}

func NewNotificationBuilder() *NotificationBuilder {
	link := "/jobs/42"
	return &NotificationBuilder{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Type:      notification.TypeNewJob,
		Message:   "A new job matching your skills was posted",
		Link:      &link,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (b *NotificationBuilder) With(mutate func(*NotificationBuilder)) *NotificationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *NotificationBuilder) BuildDraft() (notification.Draft, error) {
	return notification.NewDraft(b.UserID, b.Type, b.Message, b.Link)
}

func (b *NotificationBuilder) BuildDomain() notification.Notification {
	n, err := notification.Reconstruct(b.ID, b.UserID, string(b.Type), b.Message, b.Link, b.Timestamp, b.IsRead)
	if err != nil {
		panic(err)
	}
	return n
}

func (b *NotificationBuilder) BuildCreateRequestDTO() reqdto.CreateNotificationRequest {
	return reqdto.CreateNotificationRequest{
		UserID:  &b.UserID,
		Type:    string(b.Type),
		Message: b.Message,
		Link:    b.Link,
	}
}

// Fluent builder methods
func (b *NotificationBuilder) WithID(id uuid.UUID) *NotificationBuilder {
	b.ID = id
	return b
}

func (b *NotificationBuilder) WithUserID(userID uuid.UUID) *NotificationBuilder {
	b.UserID = userID
	return b
}

func (b *NotificationBuilder) WithType(t notification.Type) *NotificationBuilder {
	b.Type = t
	return b
}

func (b *NotificationBuilder) WithMessage(message string) *NotificationBuilder {
	b.Message = message
	return b
}

func (b *NotificationBuilder) WithLink(link *string) *NotificationBuilder {
	b.Link = link
	return b
}

func (b *NotificationBuilder) WithTimestamp(ts time.Time) *NotificationBuilder {
	b.Timestamp = ts
	return b
}

// At sets the timestamp to a fixed epoch plus sec seconds, which keeps ordering
// scenarios readable.
func (b *NotificationBuilder) At(sec int) *NotificationBuilder {
	b.Timestamp = time.Unix(int64(sec), 0).UTC()
	return b
}

func (b *NotificationBuilder) Read() *NotificationBuilder {
	b.IsRead = true
	return b
}

// Notifications builds one notification per timestamp for the same user.
func Notifications(userID uuid.UUID, secs ...int) []notification.Notification {
	out := make([]notification.Notification, 0, len(secs))
	for _, s := range secs {
		out = append(out, NewNotificationBuilder().WithUserID(userID).At(s).BuildDomain())
	}
	return out
}

func IDs(ns []notification.Notification) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.ID())
	}
	return out
}
