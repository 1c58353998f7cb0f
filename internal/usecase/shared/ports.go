package shared

import (
	"context"

	"gigboard-notify/internal/domain/notification"

	"github.com/google/uuid"
)

// NotificationRepository is the durable per-user store. Loads return entries
// in descending timestamp order. Mutations are scoped to the owning user.
//
// Failures are marked errs.ErrStorageUnavailable when the backend cannot be
// reached and errs.ErrWriteRejected when the write itself is refused. Insert
// failures always carry errs.ErrWriteRejected.
type NotificationRepository interface {
	LoadForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error)
	Insert(ctx context.Context, draft notification.Draft) (notification.Notification, error)
	// SetRead is idempotent; setting the current value succeeds.
	SetRead(ctx context.Context, userID, id uuid.UUID, isRead bool) error
	// SetAllRead marks every unread entry of the user and returns how many changed.
	SetAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	// Delete succeeds when the row is already gone.
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// EventChannel opens per-user subscriptions to inbox changes.
type EventChannel interface {
	Open(ctx context.Context, userID uuid.UUID) (ChannelHandle, error)
}

// ChannelHandle is one open subscription. Events is closed when the stream
// ends, either after Close or because the channel was lost.
type ChannelHandle interface {
	Events() <-chan Event
	// Close stops delivery. It is safe to call more than once.
	Close() error
}

// Notifier surfaces a system-level alert for a newly arrived notification.
// It must never fail or block its caller.
type Notifier interface {
	Notify(n notification.Notification)
}
