package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/utils"
)

// whoami echoes the resolved caller id.
func whoami(c echo.Context) error {
	return c.String(http.StatusOK, userKey(c))
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentityFromHeader(t *testing.T) {
	e := echo.New()
	e.Use(Identity(""))
	e.GET("/me", whoami)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"absent", "", http.StatusOK, "anon"},
		{"valid", "17", http.StatusOK, "17"},
		{"padded", " 17 ", http.StatusOK, "17"},
		{"not a number", "abc", http.StatusBadRequest, ""},
		{"zero", "0", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := serve(e, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestIdentityFromToken(t *testing.T) {
	e := echo.New()
	e.Use(Identity("s3cret"))
	e.GET("/me", whoami)

	tok, err := utils.NewIdentityToken("s3cret", 9, 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	req.Header.Set(UserIDHeader, "1")
	rec := serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9", rec.Body.String(), "token wins over header")

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(UserIDHeader, "1")
	rec = serve(e, req)
	assert.Equal(t, "anon", rec.Body.String(), "raw header ignored")

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic dTpw")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req).Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError, "boom") })

	serve(e, httptest.NewRequest(http.MethodGet, "/ok", nil))
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, int64(http.StatusNoContent), entries[0].ContextMap()["status"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "/boom", entries[1].ContextMap()["route"])
}

func TestMetricsMiddlewarePassesErrors(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/missing", func(c echo.Context) error { return echo.ErrNotFound })
	assert.Equal(t, http.StatusNotFound, serve(e, httptest.NewRequest(http.MethodGet, "/missing", nil)).Code)
}

func TestCacheKey(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "p", KeyStrategy: "route_query"}
	e := echo.New()
	key := func(target string, uid int64) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/items/search")
		if uid != 0 {
			c.Set(ContextUserID, uid)
		}
		return cacheKey(cfg, c)
	}

	a := key("/items/search?text=drill&from=0", 1)
	assert.True(t, strings.HasPrefix(a, "p:"))
	assert.Len(t, a, len("p:")+32)
	assert.Equal(t, a, key("/items/search?from=0&text=drill", 2), "query order and user ignored")
	assert.NotEqual(t, a, key("/items/search?text=saw&from=0", 1))

	cfg.KeyStrategy = "route_query_user"
	assert.NotEqual(t, key("/items/search?text=drill", 1), key("/items/search?text=drill", 2))
}

func TestBodyRecorderLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	br := &bodyRecorder{ResponseWriter: rec, limit: 4}
	_, _ = br.Write([]byte("abc"))
	assert.False(t, br.overflow)
	assert.Equal(t, "abc", br.buf.String())

	_, _ = br.Write([]byte("defg"))
	assert.True(t, br.overflow)
	assert.Zero(t, br.buf.Len())
	assert.Equal(t, "abcdefg", rec.Body.String())
}

func TestDisabledRedisMiddlewaresPassThrough(t *testing.T) {
	e := echo.New()
	e.Use(NewRedisCache(config.CacheConfig{Enabled: true}, nil))
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, zap.NewNop()))
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "x") })

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/bookings")
	c.Set(ContextUserID, int64(5))

	cfg := config.RateLimitConfig{Prefix: "rl"}
	for strategy, want := range map[string]string{
		"ip":            "rl:ip:10.0.0.1",
		"user":          "rl:user:5",
		"ip_user":       "rl:ip:10.0.0.1:user:5",
		"user_route":    "rl:user:5:route:POST /bookings",
		"ip_user_route": "rl:ip:10.0.0.1:user:5:route:POST /bookings",
	} {
		cfg.KeyStrategy = strategy
		assert.Equal(t, want, rateKey(cfg, c), strategy)
	}
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 2, retryAfter(1500*time.Millisecond))
	assert.Equal(t, 1, retryAfter(time.Millisecond))
	assert.Equal(t, 0, retryAfter(-10*time.Millisecond))
}
