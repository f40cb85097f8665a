package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/dto"
	"github.com/iliyamo/shareit/internal/service"
)

// RequestHandler serves the item-request board under /requests.
type RequestHandler struct {
	Svc *service.RequestService
	Log *zap.Logger
}

func (h *RequestHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req dto.RequestCreate
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	r, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *RequestHandler) ListOwn(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	out, err := h.Svc.ListOwn(c.Request().Context(), uid)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListOthers handles GET /requests/all?from=&size=.
func (h *RequestHandler) ListOthers(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	out, err := h.Svc.ListOthers(c.Request().Context(), uid, page)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	r, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, r)
}
