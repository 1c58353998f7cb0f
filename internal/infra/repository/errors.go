package repository

import (
	"context"
	"errors"
	"net"
	"strings"

	"gigboard-notify/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

// classify maps a pgx error to a repository error kind.
func classify(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return infra.KindDuplicateKey
		case pgErr.Code == "23503":
			return infra.KindForeignKeyViolated
		case strings.HasPrefix(pgErr.Code, "23"):
			return infra.KindConstraint
		case strings.HasPrefix(pgErr.Code, "22"):
			return infra.KindInvalidRecord
		// 08: connection exception, 57P: operator intervention (shutdown)
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"):
			return infra.KindUnavailable
		default:
			return infra.KindDBFailure
		}
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		pgconn.Timeout(err):
		return infra.KindUnavailable
	}
	return infra.KindDBFailure
}
