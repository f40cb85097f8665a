package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/metrics"
)

// takeToken refills a bucket continuously at ARGV[2] tokens per
// millisecond up to ARGV[1] and takes one token when available.  It
// returns {taken, tokens_left, wait_ms}.
var takeToken = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1]) or capacity
local ts = tonumber(state[2]) or now
tokens = math.min(capacity, tokens + math.max(0, now - ts) * rate)
local taken, wait = 0, 0
if tokens >= 1 then
	taken = 1
	tokens = tokens - 1
elseif rate > 0 then
	wait = math.ceil((1 - tokens) / rate)
end
redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'ts', now)
redis.call('PEXPIRE', KEYS[1], ARGV[4])
return {taken, math.floor(tokens), wait}
`)

// bucketResult is the outcome of one takeToken call.
type bucketResult struct {
	taken bool
	left  int64
	wait  time.Duration
}

type tokenBucket struct {
	cfg  config.RateLimitConfig
	rdb  *redis.Client
	rate float64 // tokens per millisecond
}

func (b tokenBucket) take(ctx context.Context, key string) (bucketResult, error) {
	vals, err := takeToken.Run(ctx, b.rdb, []string{key},
		b.cfg.Capacity, strconv.FormatFloat(b.rate, 'g', -1, 64), time.Now().UnixMilli(), b.cfg.TTL.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return bucketResult{}, err
	}
	if len(vals) != 3 {
		return bucketResult{}, fmt.Errorf("rate limit script returned %d values", len(vals))
	}
	return bucketResult{taken: vals[0] == 1, left: vals[1], wait: time.Duration(vals[2]) * time.Millisecond}, nil
}

// NewTokenBucket limits requests per key with a Redis token bucket.
// Redis failures let the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log *zap.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passThrough
	}
	intervalMs := cfg.RefillInterval.Milliseconds()
	if intervalMs < 1 {
		intervalMs = 1
	}
	b := tokenBucket{cfg: cfg, rdb: rdb, rate: float64(cfg.RefillTokens) / float64(intervalMs)}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(cfg, c)
			res, err := b.take(c.Request().Context(), key)
			if err != nil {
				log.Warn("rate limit unavailable", zap.String("key", key), zap.Error(err))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.left, 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}
			if res.taken {
				return next(c)
			}

			secs := retryAfter(res.wait)
			h.Set("Retry-After", strconv.Itoa(secs))
			metrics.IncRateLimited()
			log.Debug("rate limited", zap.String("key", key), zap.Duration("wait", res.wait))
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded", "retry_after": secs})
		}
	}
}

// retryAfter rounds wait up to whole seconds.
func retryAfter(wait time.Duration) int {
	if wait <= 0 {
		return 0
	}
	return int((wait + time.Second - 1) / time.Second)
}

// rateKey names the bucket a request draws from.  The default strategy
// keys by ip, user and route together.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	route := c.Request().Method + " " + c.Path()

	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = []string{"ip", ip}
	case "user":
		parts = []string{"user", userKey(c)}
	case "ip_user":
		parts = []string{"ip", ip, "user", userKey(c)}
	case "user_route":
		parts = []string{"user", userKey(c), "route", route}
	default:
		parts = []string{"ip", ip, "user", userKey(c), "route", route}
	}
	return cfg.Prefix + ":" + strings.Join(parts, ":")
}
