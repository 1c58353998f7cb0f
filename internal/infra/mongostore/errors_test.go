//go:build unit

package mongostore

import (
	"context"
	"errors"
	"testing"

	"gigboard-notify/internal/infra"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect infra.RepositoryErrorKind
	}{
		{
			name:   "duplicate key",
			err:    mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}},
			expect: infra.KindDuplicateKey,
		},
		{
			name:   "document validation",
			err:    mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: documentValidationFailure, Message: "Document failed validation"}}},
			expect: infra.KindInvalidRecord,
		},
		{
			name:   "other write error",
			err:    mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 2, Message: "bad value"}}},
			expect: infra.KindConstraint,
		},
		{
			name:   "client disconnected",
			err:    mongo.ErrClientDisconnected,
			expect: infra.KindUnavailable,
		},
		{
			name:   "deadline",
			err:    context.DeadlineExceeded,
			expect: infra.KindUnavailable,
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			expect: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, classify(tc.err))
		})
	}
}
