package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type NotificationRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Message   string
	Link      pgtype.Text
	IsRead    bool
	CreatedAt pgtype.Timestamptz
}

type InsertNotificationParams struct {
	UserID  uuid.UUID
	Type    string
	Message string
	Link    pgtype.Text
}

type SetNotificationReadParams struct {
	ID     uuid.UUID
	UserID uuid.UUID
	IsRead bool
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const listNotificationsByUser = `
SELECT id, user_id, type, message, link, is_read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC, id`

func (q *Queries) ListNotificationsByUser(ctx context.Context, userID uuid.UUID) ([]NotificationRow, error) {
	rows, err := q.db.Query(ctx, listNotificationsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []NotificationRow
	for rows.Next() {
		var i NotificationRow
		if err := rows.Scan(&i.ID, &i.UserID, &i.Type, &i.Message, &i.Link, &i.IsRead, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertNotification = `
INSERT INTO notifications (user_id, type, message, link)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, type, message, link, is_read, created_at`

func (q *Queries) InsertNotification(ctx context.Context, arg InsertNotificationParams) (NotificationRow, error) {
	var i NotificationRow
	err := q.db.QueryRow(ctx, insertNotification, arg.UserID, arg.Type, arg.Message, arg.Link).
		Scan(&i.ID, &i.UserID, &i.Type, &i.Message, &i.Link, &i.IsRead, &i.CreatedAt)
	return i, err
}

const setNotificationRead = `
UPDATE notifications SET is_read = $3
WHERE id = $1 AND user_id = $2`

// SetNotificationRead returns the number of rows matched.
func (q *Queries) SetNotificationRead(ctx context.Context, arg SetNotificationReadParams) (int64, error) {
	tag, err := q.db.Exec(ctx, setNotificationRead, arg.ID, arg.UserID, arg.IsRead)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const setAllNotificationsRead = `
UPDATE notifications SET is_read = TRUE
WHERE user_id = $1 AND NOT is_read`

func (q *Queries) SetAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, setAllNotificationsRead, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteNotification = `
DELETE FROM notifications WHERE id = $1 AND user_id = $2`

func (q *Queries) DeleteNotification(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteNotification, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteNotificationsByUser = `
DELETE FROM notifications WHERE user_id = $1`

func (q *Queries) DeleteNotificationsByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteNotificationsByUser, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
