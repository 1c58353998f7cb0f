package bootstrap

import (
	"gigboard-notify/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.SessionConfig { return cfg.Session },
	),
)
