package resilience

import (
	"context"
	"log/slog"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// BreakingRepository fails fast with ErrStorageUnavailable while the backend
// keeps failing. Only unavailability counts toward tripping; rejected writes
// mean the store is up.
type BreakingRepository struct {
	next   shared.NotificationRepository
	cb     *gobreaker.CircuitBreaker[any]
	logger *slog.Logger
}

func NewBreakingRepository(next shared.NotificationRepository, cfg config.BreakerConfig, logger *slog.Logger) *BreakingRepository {
	logger = logger.With("component", "repository_breaker")
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "notification-repository",
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errs.Is(err, errs.ErrStorageUnavailable)
		},
	})
	return &BreakingRepository{next: next, cb: cb, logger: logger}
}

// State reports the breaker position: closed, half-open or open.
func (r *BreakingRepository) State() string {
	return r.cb.State().String()
}

func (r *BreakingRepository) LoadForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	return execute(r.cb, func() ([]notification.Notification, error) {
		return r.next.LoadForUser(ctx, userID)
	})
}

func (r *BreakingRepository) Insert(ctx context.Context, draft notification.Draft) (notification.Notification, error) {
	n, err := execute(r.cb, func() (notification.Notification, error) {
		return r.next.Insert(ctx, draft)
	})
	if err != nil && !errs.Is(err, errs.ErrWriteRejected) {
		err = errs.Mark(err, errs.ErrWriteRejected)
	}
	return n, err
}

func (r *BreakingRepository) SetRead(ctx context.Context, userID, id uuid.UUID, isRead bool) error {
	_, err := execute(r.cb, func() (struct{}, error) {
		return struct{}{}, r.next.SetRead(ctx, userID, id, isRead)
	})
	return err
}

func (r *BreakingRepository) SetAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return execute(r.cb, func() (int64, error) {
		return r.next.SetAllRead(ctx, userID)
	})
}

func (r *BreakingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := execute(r.cb, func() (struct{}, error) {
		return struct{}{}, r.next.Delete(ctx, userID, id)
	})
	return err
}

func (r *BreakingRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return execute(r.cb, func() (int64, error) {
		return r.next.DeleteAllForUser(ctx, userID)
	})
}

// execute runs fn through cb and keeps fn's own error untouched so callers
// still see the adapter's marks.
func execute[T any](cb *gobreaker.CircuitBreaker[any], fn func() (T, error)) (T, error) {
	var out T
	var callErr error
	_, err := cb.Execute(func() (any, error) {
		out, callErr = fn()
		return nil, callErr
	})
	if callErr != nil {
		return out, callErr
	}
	if err != nil {
		// rejected by the breaker itself
		return out, errs.Mark(errs.Wrap(err, "notification store unavailable"), errs.ErrStorageUnavailable)
	}
	return out, nil
}
