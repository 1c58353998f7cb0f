package repository

import (
	"context"
	"log/slog"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/infra"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/pkg/pgconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("gigboard-notify/repository")

//go:generate mockgen -source=notification.go -destination=../../../tests/mock/repository/notification_queries.go -package=repositorymock
type NotificationQueries interface {
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]NotificationRow, error)
	InsertNotification(ctx context.Context, arg InsertNotificationParams) (NotificationRow, error)
	SetNotificationRead(ctx context.Context, arg SetNotificationReadParams) (int64, error)
	SetAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteNotification(ctx context.Context, id, userID uuid.UUID) (int64, error)
	DeleteNotificationsByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationRepository stores notifications in PostgreSQL. Change events
// are published by the notifications_notify trigger, not by this type.
type NotificationRepository struct {
	queries NotificationQueries
	logger  *slog.Logger
}

func NewNotificationRepository(db DBTX, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		queries: NewQueries(db),
		logger:  logger.With("component", "pg_repository"),
	}
}

func NewNotificationRepositoryWithQueries(queries NotificationQueries, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		logger:  logger.With("component", "pg_repository"),
	}
}

func (r *NotificationRepository) LoadForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	ctx, span := startSpan(ctx, "LoadForUser", userID)
	defer span.End()

	rows, err := r.queries.ListNotificationsByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, infra.WrapRepoErr(r.logger, classify(err), "failed to load notifications", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		n, err := rowToDomain(row)
		if err != nil {
			r.logger.Warn("skipping unreadable notification row", "notification_id", row.ID, "error", err)
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *NotificationRepository) Insert(ctx context.Context, draft notification.Draft) (notification.Notification, error) {
	ctx, span := startSpan(ctx, "Insert", draft.UserID())
	defer span.End()

	row, err := r.queries.InsertNotification(ctx, InsertNotificationParams{
		UserID:  draft.UserID(),
		Type:    draft.Type().String(),
		Message: draft.Message().String(),
		Link:    pgconv.StringPtrToPgtype(draft.Link().Ptr()),
	})
	if err != nil {
		span.RecordError(err)
		return notification.Notification{}, infra.WrapWriteErr(r.logger, classify(err), "failed to insert notification", err)
	}

	n, err := rowToDomain(row)
	if err != nil {
		return notification.Notification{}, infra.WrapWriteErr(r.logger, infra.KindInvalidRecord, "inserted row is unreadable", err)
	}
	return n, nil
}

func (r *NotificationRepository) SetRead(ctx context.Context, userID, id uuid.UUID, isRead bool) error {
	ctx, span := startSpan(ctx, "SetRead", userID)
	defer span.End()

	matched, err := r.queries.SetNotificationRead(ctx, SetNotificationReadParams{ID: id, UserID: userID, IsRead: isRead})
	if err != nil {
		span.RecordError(err)
		return infra.WrapRepoErr(r.logger, classify(err), "failed to update read flag", err)
	}
	if matched == 0 {
		return errs.Mark(infra.WrapRepoErr(r.logger, infra.KindNotFound, "notification not found", nil), errs.ErrNotificationNotFound)
	}
	return nil
}

func (r *NotificationRepository) SetAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	ctx, span := startSpan(ctx, "SetAllRead", userID)
	defer span.End()

	changed, err := r.queries.SetAllNotificationsRead(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return 0, infra.WrapRepoErr(r.logger, classify(err), "failed to mark all notifications read", err)
	}
	return changed, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := startSpan(ctx, "Delete", userID)
	defer span.End()

	if _, err := r.queries.DeleteNotification(ctx, id, userID); err != nil {
		span.RecordError(err)
		return infra.WrapRepoErr(r.logger, classify(err), "failed to delete notification", err)
	}
	return nil
}

func (r *NotificationRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	ctx, span := startSpan(ctx, "DeleteAllForUser", userID)
	defer span.End()

	deleted, err := r.queries.DeleteNotificationsByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return 0, infra.WrapRepoErr(r.logger, classify(err), "failed to delete notifications", err)
	}
	return deleted, nil
}

func rowToDomain(row NotificationRow) (notification.Notification, error) {
	return notification.Reconstruct(
		row.ID,
		row.UserID,
		row.Type,
		row.Message,
		pgconv.StringPtrFromPgtype(row.Link),
		pgconv.TimeFromPgtype(row.CreatedAt),
		row.IsRead,
	)
}

func startSpan(ctx context.Context, op string, userID uuid.UUID) (context.Context, trace.Span) {
	return tracer.Start(ctx, "pg."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("user_id", userID.String()),
		))
}
