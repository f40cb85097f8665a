package gateway

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/validation"
)

// check inspects a request before it is forwarded.  A non-nil error is
// reported to the client as 400.
type check func(c echo.Context) error

// pass runs checks in order and forwards the request when all succeed.
func (g *Gateway) pass(checks ...check) echo.HandlerFunc {
	return func(c echo.Context) error {
		for _, chk := range checks {
			if err := chk(c); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
			}
		}
		return g.proxy(c)
	}
}

// requireUser rejects requests without a positive X-Sharer-User-Id.
func requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := strings.TrimSpace(c.Request().Header.Get(middleware.UserIDHeader))
		if raw == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing " + middleware.UserIDHeader + " header"})
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + middleware.UserIDHeader + " header"})
		}
		c.Set(middleware.ContextUserID, id)
		return next(c)
	}
}

func pathID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return errors.New("invalid id")
	}
	return nil
}

func approved(c echo.Context) error {
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return errors.New("approved must be true or false")
	}
	return nil
}

// body decodes the JSON body into T, validates its tags and runs the
// extra rules.  The raw body is restored for forwarding.
func body[T any](extra ...func(*T) error) check {
	return func(c echo.Context) error {
		req := c.Request()
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			return errors.New("invalid body")
		}
		req.Body = io.NopCloser(bytes.NewReader(raw))
		defer func() { req.Body = io.NopCloser(bytes.NewReader(raw)) }()

		var v T
		if err := c.Bind(&v); err != nil {
			return errors.New("invalid body")
		}
		if err := c.Validate(&v); err != nil {
			return errors.New(validation.Message(err))
		}
		for _, rule := range extra {
			if err := rule(&v); err != nil {
				return err
			}
		}
		return nil
	}
}

// listing validates from/size (and state when withState) and fills in
// the defaults state=ALL, from=0, size=10 before forwarding.
func listing(withState bool) check {
	return func(c echo.Context) error {
		req := c.Request()
		q := req.URL.Query()
		if withState {
			raw := q.Get("state")
			st, ok := model.ParseBookingState(raw)
			if !ok {
				return fmt.Errorf("Unknown state: %s", raw)
			}
			q.Set("state", string(st))
		}
		if err := intParam(q, "from", 0); err != nil {
			return err
		}
		if err := intParam(q, "size", 1); err != nil {
			return err
		}
		req.URL.RawQuery = q.Encode()
		return nil
	}
}

var listingDefaults = map[string]string{"from": "0", "size": "10"}

func intParam(q url.Values, name string, min int) error {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		q.Set(name, listingDefaults[name])
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s must be an integer", name)
	}
	if n < min {
		return fmt.Errorf("%s must be at least %d", name, min)
	}
	q.Set(name, strconv.Itoa(n))
	return nil
}
