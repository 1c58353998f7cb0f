package infra

import (
	"errors"
	"log/slog"

	"gigboard-notify/internal/pkg/errs"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr logs a storage failure once and returns it as a RepositoryError
// marked with the sentinel matching its kind, so callers can test it with
// errs.Is(err, errs.ErrStorageUnavailable) or errs.Is(err, errs.ErrWriteRejected).
func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("cause", err.Error()))
	}

	slogger.Error("Repository error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return errs.Mark(RepositoryError{Kind: kind, msg: msg, err: err}, kind.Sentinel())
}

// WrapWriteErr is WrapRepoErr for inserts: whatever the kind, the failure is
// also a rejected write.
func WrapWriteErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	wrapped := WrapRepoErr(slogger, kind, msg, err)
	if kind.Sentinel() == errs.ErrWriteRejected {
		return wrapped
	}
	return errs.Mark(wrapped, errs.ErrWriteRejected)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Sentinel returns the subsystem-level error a kind is reported as.
func (k RepositoryErrorKind) Sentinel() error {
	switch k {
	case KindDBFailure, KindUnavailable:
		return errs.ErrStorageUnavailable
	default:
		return errs.ErrWriteRejected
	}
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindUnavailable        RepositoryErrorKind = "UNAVAILABLE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConstraint         RepositoryErrorKind = "CONSTRAINT_VIOLATED"
	KindInvalidRecord      RepositoryErrorKind = "INVALID_RECORD"
)
