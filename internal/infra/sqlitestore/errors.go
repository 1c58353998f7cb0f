package sqlitestore

import (
	"context"
	"database/sql"
	"errors"

	"gigboard-notify/internal/infra"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func classify(err error) infra.RepositoryErrorKind {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		// extended result codes carry the primary code in the low byte
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_CONSTRAINT:
			if sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
				sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
				return infra.KindDuplicateKey
			}
			return infra.KindConstraint
		case sqlite3.SQLITE_MISMATCH, sqlite3.SQLITE_TOOBIG:
			return infra.KindInvalidRecord
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN,
			sqlite3.SQLITE_IOERR, sqlite3.SQLITE_FULL:
			return infra.KindUnavailable
		default:
			return infra.KindDBFailure
		}
	}

	switch {
	case errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return infra.KindUnavailable
	}
	return infra.KindDBFailure
}
