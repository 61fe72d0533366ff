package bootstrap

import (
	"coachdesk/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	IntegrationsModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
