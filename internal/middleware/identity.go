package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the caller identity between the gateway and the
// server.
const UserIDHeader = "X-Sharer-User-Id"

// ContextUserID is the echo context key under which the caller's user
// id (int64) is stored.
const ContextUserID = "user_id"

// Identity resolves the caller before handlers run.  With an empty
// secret the id is read from the X-Sharer-User-Id header; otherwise it
// comes from the gateway-signed bearer token (see JWTAuth) and the raw
// header is ignored.  Requests without an identity pass through
// unauthenticated; handlers that need one reject them.
func Identity(secret string) echo.MiddlewareFunc {
	if secret != "" {
		return JWTAuth(secret)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(UserIDHeader))
			if raw == "" {
				return next(c)
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + UserIDHeader + " header"})
			}
			c.Set(ContextUserID, id)
			return next(c)
		}
	}
}

// userKey returns the caller id for cache and rate-limit keys, or
// "anon" when the request is unauthenticated.
func userKey(c echo.Context) string {
	if id, ok := c.Get(ContextUserID).(int64); ok {
		return strconv.FormatInt(id, 10)
	}
	return "anon"
}
