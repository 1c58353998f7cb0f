//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// InsertNotification writes a row the way a producer service would, bypassing
// the application. The table trigger announces it on the user's channel.
func InsertNotification(t *testing.T, db DBLike, userID uuid.UUID, typ, message string, link *string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO notifications (user_id, type, message, link) VALUES ($1, $2, $3, $4) RETURNING id",
		userID, typ, message, link).Scan(&id)
	require.NoError(t, err)
	return id
}

// SetRead flips the read flag directly in the database.
func SetRead(t *testing.T, db DBLike, id uuid.UUID, isRead bool) {
	t.Helper()

	tag, err := db.Exec(context.Background(), "UPDATE notifications SET is_read = $2 WHERE id = $1", id, isRead)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected(), "notification %s not found", id)
}

func CountNotifications(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM notifications WHERE user_id = $1", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except the migration ledger
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
