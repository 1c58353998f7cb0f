package channel

import (
	"context"
	"log/slog"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
)

// UnreadLister is implemented by stores that can list a user's unread ids,
// which lets a bulk read be published with the ids it touched.
type UnreadLister interface {
	UnreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Publisher receives events for a user's topic.
type Publisher interface {
	Publish(userID uuid.UUID, ev shared.Event)
}

// PublishingRepository publishes a change event after every successful write
// to the wrapped store. Deletes are not published; they never travel over
// the channel.
type PublishingRepository struct {
	shared.NotificationRepository
	publisher Publisher
	logger    *slog.Logger
}

func NewPublishingRepository(repo shared.NotificationRepository, publisher Publisher, logger *slog.Logger) *PublishingRepository {
	return &PublishingRepository{
		NotificationRepository: repo,
		publisher:              publisher,
		logger:                 logger.With("component", "publishing_repository"),
	}
}

func (r *PublishingRepository) Insert(ctx context.Context, draft notification.Draft) (notification.Notification, error) {
	n, err := r.NotificationRepository.Insert(ctx, draft)
	if err != nil {
		return n, err
	}
	r.publisher.Publish(n.UserID(), shared.Created(n))
	return n, nil
}

func (r *PublishingRepository) SetRead(ctx context.Context, userID, id uuid.UUID, isRead bool) error {
	if err := r.NotificationRepository.SetRead(ctx, userID, id, isRead); err != nil {
		return err
	}
	r.publisher.Publish(userID, shared.Updated(id, userID, isRead))
	return nil
}

func (r *PublishingRepository) SetAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	lister, ok := r.NotificationRepository.(UnreadLister)
	if !ok {
		return r.NotificationRepository.SetAllRead(ctx, userID)
	}

	// Listing first can miss rows inserted in between; those were published
	// as unread and a later reload corrects them.
	ids, err := lister.UnreadIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	changed, err := r.NotificationRepository.SetAllRead(ctx, userID)
	if err != nil {
		return changed, err
	}
	if len(ids) > 0 {
		r.publisher.Publish(userID, shared.UpdatedBatch(userID, ids, true))
	}
	r.logger.Debug("published bulk read", "user_id", userID, "count", len(ids))
	return changed, nil
}
