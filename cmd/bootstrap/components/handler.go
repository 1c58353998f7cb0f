package components

import (
	"gigboard-notify/internal/handler"
	"gigboard-notify/internal/handler/api"
	"gigboard-notify/internal/handler/middleware"
	"gigboard-notify/internal/handler/stream"
	"gigboard-notify/internal/usecase/session"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		fx.Annotate(
			stream.NewHub,
			fx.As(fx.Self()),
			fx.As(new(session.ClientGateway)),
		),
		stream.NewHandler,
		api.NewSessionHandler,
		api.NewNotificationHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(s *api.SessionHandler, n *api.NotificationHandler, st *stream.Handler) handler.Handlers {
	return handler.Handlers{Session: s, Notification: n, Stream: st}
}
