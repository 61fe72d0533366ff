package components

import (
	"time"

	"coachdesk/internal/domain/slot"
	"coachdesk/internal/pkg/clock"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/usecase"
	"coachdesk/internal/usecase/commands"
	"coachdesk/internal/usecase/queries"
	"coachdesk/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewRedemptionCommands,
		NewBookingSettings,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewRedemptionQueries,
		queries.NewAvailabilityQueries,
		NewAccessQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBookingSettings(cfg config.Config, window slot.Window) commands.BookingSettings {
	return commands.BookingSettings{
		Window:       window,
		EventSummary: cfg.Calendar.EventSummary,
	}
}

func NewAccessQueries(readStore queries.AccessReadStore, storage shared.ObjectStorage, cfg config.Config, clk clock.Clock) queries.AccessQueries {
	return queries.NewAccessQueries(readStore, storage, presignTTL(cfg), clk)
}

func presignTTL(cfg config.Config) time.Duration {
	if cfg.Storage.PresignTTL <= 0 {
		return 15 * time.Minute
	}
	return cfg.Storage.PresignTTL
}
