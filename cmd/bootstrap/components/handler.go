package components

import (
	"coachdesk/internal/handler"
	"coachdesk/internal/handler/api"
	"coachdesk/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRedemptionHandler,
		api.NewCallHandler,
		api.NewAccessHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimitMiddleware,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	redemption *api.RedemptionHandler,
	call *api.CallHandler,
	access *api.AccessHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:       auth,
		Redemption: redemption,
		Call:       call,
		Access:     access,
		Admin:      admin,
	}
}

func NewMiddlewares(auth *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) handler.Middlewares {
	return handler.Middlewares{Auth: auth, RateLimit: rateLimit}
}
