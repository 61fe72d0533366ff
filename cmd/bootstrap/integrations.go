package bootstrap

import (
	"context"

	"coachdesk/internal/infra/calendar"
	"coachdesk/internal/infra/mailer"
	"coachdesk/internal/infra/redisstore"
	"coachdesk/internal/infra/storage"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// IntegrationsModule provides the adapters for services outside the database.
var IntegrationsModule = fx.Module("integrations",
	fx.Provide(
		NewRedis,
		fx.Annotate(
			redisstore.NewFixedWindowLimiter,
			fx.As(new(shared.RateLimiter)),
		),
		fx.Annotate(
			redisstore.NewTokenRevocation,
			fx.As(new(shared.TokenRevoker)),
		),
		NewCalendar,
		NewMailer,
		fx.Annotate(
			NewProductStore,
			fx.As(new(shared.ObjectStorage)),
		),
		clock.NewRealClock,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (redis.Cmdable, error) {
	rdb, err := redisstore.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return rdb, nil
}

func NewCalendar(cfg config.Config) (shared.Calendar, error) {
	return calendar.New(context.Background(), cfg.Calendar)
}

func NewProductStore(cfg config.Config) (*storage.ProductStore, error) {
	return storage.NewProductStore(cfg.Storage)
}

func NewMailer(cfg config.Config) shared.Mailer {
	return mailer.New(cfg.Mail)
}
