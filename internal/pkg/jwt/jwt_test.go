//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"gigboard-notify/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestService_ProducerClaim(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	userID := uuid.New()

	plain, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	producer, err := svc.GenerateProducerToken(userID, 0)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(plain)
	require.NoError(t, err)
	assert.False(t, claims.Producer)

	claims, err = svc.ValidateToken(producer)
	require.NoError(t, err)
	assert.True(t, claims.Producer)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now().Add(59*time.Minute)), "zero ttl uses the configured duration")
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	userID := uuid.New()
	svc := jwt.NewService("secret", time.Hour)

	expired, err := svc.GenerateTokenWithTTL(userID, -time.Minute)
	require.NoError(t, err)
	foreign, err := jwt.NewService("other-secret", time.Hour).GenerateToken(userID)
	require.NoError(t, err)
	anonymous, err := svc.GenerateToken(uuid.Nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "expired", token: expired, want: jwt.ErrExpiredToken},
		{name: "wrong secret", token: foreign, want: jwt.ErrInvalidToken},
		{name: "no user", token: anonymous, want: jwt.ErrInvalidToken},
		{name: "garbage", token: "not-a-token", want: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
