//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"gigboard-notify/internal/handler/dto/request"
	"gigboard-notify/internal/handler/dto/response"
	"gigboard-notify/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// StartSession logs the token's user in to the notification inbox.
func StartSession(t *testing.T, router *gin.Engine, token, permission string) response.SessionResponse {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/session",
		request.StartSessionRequest{NotificationPermission: permission}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res response.SessionResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	return res
}

func StopSession(t *testing.T, router *gin.Engine, token string) {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodDelete, "/api/session", nil, token)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
