package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coachdesk/internal/handler/api"
	"coachdesk/internal/handler/middleware"
	"coachdesk/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth       *api.AuthHandler
	Redemption *api.RedemptionHandler
	Call       *api.CallHandler
	Access     *api.AccessHandler
	Admin      *api.AdminHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limits := cfg.RateLimit
	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{mw.RateLimit.Limit("login", limits.LoginLimit)}},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(mw.Auth.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		redemptions := apiGroup.Group("/redemptions")
		{
			addRoutes(redemptions, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Redemption.RequestCode, Mw: []gin.HandlerFunc{mw.RateLimit.Limit("request", limits.RequestLimit)}},
				{Method: http.MethodPost, Path: "/redeem", Handler: h.Redemption.Redeem, Mw: []gin.HandlerFunc{mw.RateLimit.Limit("redeem", limits.RedeemLimit)}},
			})
		}

		calls := apiGroup.Group("/calls")
		{
			addRoutes(calls, []route{
				{Method: http.MethodGet, Path: "/slots", Handler: h.Call.Slots},
				{Method: http.MethodPost, Path: "/bookings", Handler: h.Call.Book, Mw: []gin.HandlerFunc{middleware.RequireAccessToken()}},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/access/verify", Handler: h.Access.Verify, Mw: []gin.HandlerFunc{middleware.RequireAccessToken()}},
			{Method: http.MethodGet, Path: "/downloads", Handler: h.Access.Download, Mw: []gin.HandlerFunc{middleware.RequireAccessToken()}},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(mw.Auth.RequireAuth(), mw.Auth.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/redemptions", Handler: h.Admin.ListRedemptions},
				{Method: http.MethodPost, Path: "/redemptions", Handler: h.Admin.IssueGiftCode},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
