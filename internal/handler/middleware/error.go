package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"gigboard-notify/internal/handler/httperr"
	"gigboard-notify/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 12

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// server-side failures keep their stack in the log, never in the body
		for _, e := range c.Errors {
			if resp, ok := e.Meta.(httperr.Response); ok && resp.Status >= http.StatusInternalServerError {
				slog.Error("request failed",
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"status", resp.Status,
					"stack", errs.ExtractStackLines(e.Err, stackLines),
				)
			}
		}

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := errs.Newf("panic: %v", rec)
				slog.Error("recovered from panic",
					"error", fmt.Sprint(rec),
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"stack", errs.ExtractStackLines(err, stackLines),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, resp)
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
