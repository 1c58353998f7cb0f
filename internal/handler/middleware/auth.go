package middleware

import (
	"log/slog"
	"net/http"

	"gigboard-notify/internal/handler/httperr"
	"gigboard-notify/internal/pkg/cookie"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxProducerKey = "producer"
)

var (
	errMissingToken = errs.New("access token required")
	errBadToken     = errs.New("invalid or expired token")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth accepts the token from the cookie or bearer header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return m.require(false)
}

// RequireStreamAuth also accepts ?token= so browsers can open a WebSocket.
func (m *AuthMiddleware) RequireStreamAuth() gin.HandlerFunc {
	return m.require(true)
}

func (m *AuthMiddleware) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.TokenFromRequest(c, allowQuery)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, errs.Wrap(errBadToken, err.Error()), "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, principal.UserID)
		c.Set(ctxProducerKey, principal.Producer)
		c.Set("jwt_claims", map[string]any{
			"user_id":  principal.UserID.String(),
			"producer": principal.Producer,
		})
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

// IsProducer reports whether the caller's token carries the producer claim.
func IsProducer(c *gin.Context) bool {
	return c.GetBool(ctxProducerKey)
}
