// Package gateway implements the public front door.  It re-validates
// headers, bodies and listing parameters, then forwards accepted
// requests unchanged to the backend server.
package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/utils"
	"github.com/iliyamo/shareit/internal/validation"
)

type Gateway struct {
	cfg     config.GatewayConfig
	log     *zap.Logger
	forward echo.HandlerFunc

	// Now is used for the "start not in the past" booking rule.
	Now func() time.Time
}

// New builds a gateway forwarding to cfg.ServerURL.
func New(cfg config.GatewayConfig, log *zap.Logger) (*Gateway, error) {
	target, err := url.Parse(cfg.ServerURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid SERVER_URL %q", cfg.ServerURL)
	}
	proxy := echomw.ProxyWithConfig(echomw.ProxyConfig{
		Balancer: echomw.NewRoundRobinBalancer([]*echomw.ProxyTarget{{Name: "server", URL: target}}),
	})
	return &Gateway{
		cfg:     cfg,
		log:     log,
		forward: proxy(func(echo.Context) error { return nil }),
		Now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Echo returns the gateway's HTTP server.
func (g *Gateway) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = g.errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(middleware.RequestLogger(g.log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	g.register(e)
	return e
}

// proxy forwards the request, replacing any client supplied
// Authorization header with a freshly signed identity token.
func (g *Gateway) proxy(c echo.Context) error {
	req := c.Request()
	req.Header.Del(echo.HeaderAuthorization)
	if id, ok := c.Get(middleware.ContextUserID).(int64); ok && g.cfg.JWTSecret != "" {
		tok, err := utils.NewIdentityToken(g.cfg.JWTSecret, id, g.cfg.JWTTTLMin)
		if err != nil {
			return fmt.Errorf("sign identity token: %w", err)
		}
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	}
	return g.forward(c)
}

func (g *Gateway) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := http.StatusInternalServerError, "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	if code >= http.StatusInternalServerError {
		g.log.Error("gateway error", zap.String("path", c.Request().URL.Path), zap.Error(err))
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"error": msg})
}
