package sqlitestore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"gigboard-notify/internal/domain/notification"
	"gigboard-notify/internal/infra"
	"gigboard-notify/internal/pkg/clock"
	"gigboard-notify/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store keeps notifications in a local SQLite file. It does not publish
// change events; wrap it with channel.PublishingRepository for that.
type Store struct {
	db     *sqlx.DB
	clock  clock.Clock
	logger *slog.Logger
}

type row struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Type      string         `db:"type"`
	Message   string         `db:"message"`
	Link      sql.NullString `db:"link"`
	IsRead    bool           `db:"is_read"`
	CreatedAt int64          `db:"created_at"`
}

// Open opens (or creates) the database at dsn, enables WAL and applies any
// pending migrations. ":memory:" is accepted for tests.
func Open(ctx context.Context, dsn string, clk clock.Clock, logger *slog.Logger) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errs.Wrap(err, "opening sqlite db")
	}
	// one writer; also keeps a :memory: database on a single connection
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errs.Wrapf(err, "applying %s", pragma)
		}
	}

	s := &Store{db: db, clock: clk, logger: logger.With("component", "sqlite_repository")}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, errs.Wrap(err, "running migrations")
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY, applied_at INTEGER NOT NULL)`); err != nil {
		return errs.Wrap(err, "creating schema_version table")
	}

	var current int
	if err := s.db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_version`); err != nil {
		return errs.Wrap(err, "reading schema version")
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return errs.Wrap(err, "listing migrations")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)

	for _, name := range names {
		version, err := strconv.Atoi(strings.SplitN(name, "_", 2)[0])
		if err != nil {
			return errs.Wrapf(err, "migration %s has no version prefix", name)
		}
		if version <= current {
			continue
		}
		body, err := migrationFS.ReadFile(path.Join("migrations", name))
		if err != nil {
			return errs.Wrapf(err, "reading migration %s", name)
		}

		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return errs.Wrap(err, "beginning migration")
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			tx.Rollback()
			return errs.Wrapf(err, "applying migration v%d", version)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
			version, s.clock.Now().Unix()); err != nil {
			tx.Rollback()
			return errs.Wrapf(err, "recording migration v%d", version)
		}
		if err := tx.Commit(); err != nil {
			return errs.Wrapf(err, "committing migration v%d", version)
		}
		s.logger.Info("applied migration", "version", version)
	}
	return nil
}

func (s *Store) LoadForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	var rows []row
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, type, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id`, userID.String())
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, classify(err), "failed to load notifications", err)
	}

	out := make([]notification.Notification, 0, len(rows))
	for _, r := range rows {
		n, err := r.toDomain()
		if err != nil {
			s.logger.Warn("skipping unreadable notification row", "notification_id", r.ID, "error", err)
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, draft notification.Draft) (notification.Notification, error) {
	// created_at is stored in microseconds; the returned row must match a reload.
	n := draft.Materialize(uuid.Nil, s.clock.Now().UTC().Truncate(time.Microsecond))
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, type, message, link, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)`,
		n.ID().String(), n.UserID().String(), n.Type().String(), n.Message().String(),
		nullString(n.Link().Ptr()), n.Timestamp().UnixMicro(),
	)
	if err != nil {
		return notification.Notification{}, infra.WrapWriteErr(s.logger, classify(err), "failed to insert notification", err)
	}
	return n, nil
}

func (s *Store) SetRead(ctx context.Context, userID, id uuid.UUID, isRead bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = ? WHERE id = ? AND user_id = ?`,
		isRead, id.String(), userID.String())
	if err != nil {
		return infra.WrapRepoErr(s.logger, classify(err), "failed to update read flag", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.Mark(infra.WrapRepoErr(s.logger, infra.KindNotFound, "notification not found", nil), errs.ErrNotificationNotFound)
	}
	return nil
}

func (s *Store) SetAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID.String())
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, classify(err), "failed to mark all notifications read", err)
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return infra.WrapRepoErr(s.logger, classify(err), "failed to delete notification", err)
	}
	return nil
}

func (s *Store) DeleteAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = ?`, userID.String())
	if err != nil {
		return 0, infra.WrapRepoErr(s.logger, classify(err), "failed to delete notifications", err)
	}
	return res.RowsAffected()
}

// UnreadIDs lists unread notification ids for a user, newest first. Used by
// the publishing decorator to fan out a bulk read.
func (s *Store) UnreadIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var raw []string
	err := s.db.SelectContext(ctx, &raw,
		`SELECT id FROM notifications WHERE user_id = ? AND is_read = 0 ORDER BY created_at DESC`, userID.String())
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, classify(err), "failed to list unread notifications", err)
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r row) toDomain() (notification.Notification, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("id: %w", err)
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("user_id: %w", err)
	}
	var link *string
	if r.Link.Valid {
		link = &r.Link.String
	}
	return notification.Reconstruct(id, userID, r.Type, r.Message, link, time.UnixMicro(r.CreatedAt).UTC(), r.IsRead)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
