package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/dto"
	"github.com/iliyamo/shareit/internal/service"
)

// BookingHandler serves /bookings.
type BookingHandler struct {
	Svc *service.BookingService
	Log *zap.Logger
}

func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req dto.BookingCreate
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start.Time, req.End.Time)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// Decide handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) Decide(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	b, err := h.Svc.Decide(c.Request().Context(), id, uid, approved)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	b, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, b)
}

// ListForBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListForBooker(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	out, err := h.Svc.ListForBooker(c.Request().Context(), uid, c.QueryParam("state"), page)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListForOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListForOwner(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	out, err := h.Svc.ListForOwner(c.Request().Context(), uid, c.QueryParam("state"), page)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
