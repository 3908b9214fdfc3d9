package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/streamvault/panel-api/internal/config"
	"github.com/streamvault/panel-api/internal/handler"
	"github.com/streamvault/panel-api/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the login/refresh/logout endpoints under /v1/auth.
// The whole group sits behind the Redis token bucket so credential stuffing
// is throttled per client IP; the limiter fails open when Redis is down.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated player bootstrap endpoints:
// reseller search and the avatar catalog.
func RegisterPublic(e *echo.Echo, p *handler.ProviderHandler, av *handler.AvatarHandler) {
	e.POST("/v1/provider/search", p.Search)
	e.GET("/v1/avatars", av.List)
}

// RegisterProtected registers the per-role endpoint groups.  Each group is
// guarded by its own verifier, so a token signed for one role is rejected
// by the other groups exactly as if no token had been sent.
func RegisterProtected(e *echo.Echo, me *handler.MeHandler, hl *handler.HighlightHandler, jwtSecret string) {
	admin := e.Group("/v1/admin")
	admin.Use(middleware.RequireAdmin(jwtSecret))
	admin.GET("/me", me.AdminMe)

	panel := e.Group("/v1/panel")
	panel.Use(middleware.RequireProvider(jwtSecret))
	panel.GET("/profile", me.ProviderProfile)
	panel.GET("/highlights", hl.List)
	panel.POST("/highlights", hl.Create)
	panel.PUT("/highlights", hl.Update)
	panel.DELETE("/highlights", hl.Delete)

	user := e.Group("/v1/user")
	user.Use(middleware.RequireUser(jwtSecret))
	user.GET("/me", me.UserMe)
}
