package httperr

import (
	"net/http"

	"gigboard-notify/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// StatusOf maps the subsystem's error taxonomy to an HTTP status.
func StatusOf(err error) int {
	switch {
	case errs.IsAny(err, errs.ErrNoActiveSession, errs.ErrSessionClosed):
		return http.StatusConflict
	case errs.Is(err, errs.ErrInvalidNotification):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrWriteRejected):
		return http.StatusUnprocessableEntity
	case errs.IsAny(err, errs.ErrStorageUnavailable, errs.ErrChannelDisconnected):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var messages = map[int]string{
	http.StatusConflict:            "No active notification session",
	http.StatusBadRequest:          "Invalid notification",
	http.StatusUnprocessableEntity: "Write rejected",
	http.StatusServiceUnavailable:  "Notification storage unavailable",
	http.StatusInternalServerError: "Internal server error",
}

// AbortWithDomainError aborts with the status StatusOf picks for err.
func AbortWithDomainError(c *gin.Context, err error) {
	status := StatusOf(err)
	AbortWithError(c, status, err, messages[status], nil)
}
