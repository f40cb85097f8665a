// Package router assembles the echo server: the middleware stack and
// every route of the marketplace API.
package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/metrics"
	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/validation"
)

// Handlers groups the resource handlers mounted by New.
type Handlers struct {
	Users    *handler.UserHandler
	Items    *handler.ItemHandler
	Bookings *handler.BookingHandler
	Requests *handler.RequestHandler
}

// Options carries the cross-cutting dependencies of the server.  Redis
// may be nil, in which case caching and rate limiting are disabled.
type Options struct {
	Log       *zap.Logger
	JWTSecret string
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Metrics   bool
	DB        handler.Pinger
}

// New returns a fully wired echo instance.
func New(h Handlers, o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()

	RegisterMiddlewares(e, o)
	RegisterRoutes(e, o)
	RegisterUsers(e, h.Users)
	RegisterItems(e, h.Items, middleware.NewRedisCache(o.Cache, o.Redis))
	RegisterBookings(e, h.Bookings)
	RegisterRequests(e, h.Requests)
	return e
}

// RegisterMiddlewares installs the server-wide stack.  Identity runs
// before the rate limiter so buckets can be keyed by user.
func RegisterMiddlewares(e *echo.Echo, o Options) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.RequestLogger(o.Log))
	if o.Metrics {
		e.Use(middleware.Metrics())
	}
	e.Use(middleware.Identity(o.JWTSecret))
	e.Use(middleware.NewTokenBucket(o.RateLimit, o.Redis, o.Log))
}

// RegisterRoutes registers the operational endpoints.
func RegisterRoutes(e *echo.Echo, o Options) {
	e.GET("/healthz", handler.Health(o.DB))
	if o.Metrics {
		metrics.Register()
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}
}
