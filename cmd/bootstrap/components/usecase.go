package components

import (
	"context"

	"gigboard-notify/internal/usecase"
	"gigboard-notify/internal/usecase/session"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseValidatorsModule,
	usecaseSessionModule,
)

var usecaseSessionModule = fx.Module("usecase/session",
	fx.Provide(
		session.NewService,
	),
	fx.Invoke(registerSessionShutdown),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// registerSessionShutdown closes every live session before storage goes away.
func registerSessionShutdown(lc fx.Lifecycle, sessions session.Service) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return sessions.Shutdown(ctx)
		},
	})
}
