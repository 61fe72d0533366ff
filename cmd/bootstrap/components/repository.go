package components

import (
	"coachdesk/internal/infra/readstore"
	"coachdesk/internal/infra/uow"
	"coachdesk/internal/usecase/queries"

	"go.uber.org/fx"
)

// Write-side repositories are reached through the unit of work only.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewAccessReadStore,
			fx.As(new(queries.AccessReadStore)),
		),
		fx.Annotate(
			readstore.NewRedemptionReadStore,
			fx.As(new(queries.RedemptionReadStore)),
		),
	),
)
