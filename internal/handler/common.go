// Package handler maps HTTP requests onto the marketplace services.
// Handlers bind and validate the body, resolve the caller from the echo
// context and translate service errors into JSON error responses.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/service"
	"github.com/iliyamo/shareit/internal/validation"
)

var errNoUser = errors.New("missing " + middleware.UserIDHeader + " header")

// getUserID extracts the caller id stored by the identity middleware.
func getUserID(c echo.Context) (int64, error) {
	switch t := c.Get(middleware.ContextUserID).(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, errNoUser
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// queryInt returns nil when the parameter is absent.
func queryInt(c echo.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidArgument, name)
	}
	return &n, nil
}

// queryPage reads the optional from/size pair.  Errors wrap
// service.ErrInvalidArgument.
func queryPage(c echo.Context) (model.Page, error) {
	from, err := queryInt(c, "from")
	if err != nil {
		return model.Page{}, err
	}
	size, err := queryInt(c, "size")
	if err != nil {
		return model.Page{}, err
	}
	return service.NewPage(from, size)
}

// bind decodes and validates the body into v.
func bind(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return errors.New("invalid body")
	}
	if err := c.Validate(v); err != nil {
		return errors.New(validation.Message(err))
	}
	return nil
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// fail writes err as {"error": ...}.  Unexpected errors are logged and
// hidden from the client.
func fail(c echo.Context, log *zap.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("route", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err))
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
