package components

import (
	"context"
	"log/slog"

	"gigboard-notify/internal/infra/channel"
	"gigboard-notify/internal/infra/db"
	"gigboard-notify/internal/infra/mongostore"
	"gigboard-notify/internal/infra/repository"
	"gigboard-notify/internal/infra/resilience"
	"gigboard-notify/internal/infra/sqlitestore"
	"gigboard-notify/internal/pkg/clock"
	"gigboard-notify/internal/pkg/config"
	"gigboard-notify/internal/pkg/errs"
	"gigboard-notify/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		clock.NewRealClock,
		NewStorage,
	),
)

// Storage is the repository and the event channel that reports its changes.
// The two always come from the same backend.
type Storage struct {
	fx.Out

	Repo    shared.NotificationRepository
	Channel shared.EventChannel
}

// NewStorage connects the backend selected by STORE_DRIVER. Postgres delivers
// changes through LISTEN/NOTIFY triggers; the SQLite and Mongo stores publish
// their own writes to an in-process broker.
func NewStorage(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Session.ActivateTimeout)
	defer cancel()

	var (
		repo shared.NotificationRepository
		ch   shared.EventChannel
	)
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, cleanup, err := db.Connect(ctx, cfg.DB)
		if err != nil {
			return Storage{}, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			cleanup()
			return nil
		}})
		repo = repository.NewNotificationRepository(pool, logger)
		ch = channel.NewPGListener(pool, logger)

	case config.StoreSQLite:
		store, err := sqlitestore.Open(ctx, cfg.SQLite.Path, clk, logger)
		if err != nil {
			return Storage{}, err
		}
		broker := channel.NewBroker(logger)
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			broker.Close()
			return store.Close()
		}})
		repo = channel.NewPublishingRepository(store, broker, logger)
		ch = broker

	case config.StoreMongo:
		database, cleanup, err := mongostore.Connect(ctx, cfg.Mongo)
		if err != nil {
			return Storage{}, err
		}
		store, err := mongostore.New(ctx, database, clk, logger)
		if err != nil {
			cleanup()
			return Storage{}, err
		}
		broker := channel.NewBroker(logger)
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			broker.Close()
			cleanup()
			return nil
		}})
		repo = channel.NewPublishingRepository(store, broker, logger)
		ch = broker

	default:
		return Storage{}, errs.Newf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Breaker.Enabled {
		repo = resilience.NewBreakingRepository(repo, cfg.Breaker, logger)
	}
	logger.Info("notification storage ready", "driver", string(cfg.Store.Driver), "breaker", cfg.Breaker.Enabled)
	return Storage{Repo: repo, Channel: ch}, nil
}
