package mongostore

import (
	"context"
	"errors"

	"gigboard-notify/internal/infra"

	"go.mongodb.org/mongo-driver/mongo"
)

// documentValidationFailure is the server code for a rejected document.
const documentValidationFailure = 121

func classify(err error) infra.RepositoryErrorKind {
	switch {
	case mongo.IsDuplicateKeyError(err):
		return infra.KindDuplicateKey
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return infra.KindUnavailable
	}

	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == documentValidationFailure {
				return infra.KindInvalidRecord
			}
		}
		return infra.KindConstraint
	}

	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(documentValidationFailure) {
		return infra.KindInvalidRecord
	}
	return infra.KindDBFailure
}
