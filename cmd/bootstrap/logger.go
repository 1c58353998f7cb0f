package bootstrap

import (
	"log/slog"

	"gigboard-notify/internal/handler/middleware"
	"gigboard-notify/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger builds the process logger from LOG_* settings and makes it the
// slog default.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
