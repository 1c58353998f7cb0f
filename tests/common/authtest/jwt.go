//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) Service(t *testing.T) *jwt.Service {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	return jwt.NewService(h.cfg.Secret, duration)
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.Service(t).GenerateToken(userID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) GenerateProducerToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.Service(t).GenerateProducerToken(userID, 0)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := h.Service(t).GenerateTokenWithTTL(userID, -time.Minute)
	require.NoError(t, err)
	return token
}
