package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/dto"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/service"
)

// ItemHandler serves /items, item search and item comments.
type ItemHandler struct {
	Svc *service.ItemService
	Log *zap.Logger
}

func (h *ItemHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	var req dto.ItemCreate
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	it, err := h.Svc.Create(c.Request().Context(), uid, model.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *ItemHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req dto.ItemPatch
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	it, err := h.Svc.Update(c.Request().Context(), uid, id, model.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Get renders one item; its owner also sees last/next bookings.
func (h *ItemHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	v, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, v)
}

// ListOwn lists the caller's items.
func (h *ItemHandler) ListOwn(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	views, err := h.Svc.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /items/search?text=&from=&size=.
func (h *ItemHandler) Search(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return badRequest(c, err)
	}
	page, err := queryPage(c)
	if err != nil {
		return fail(c, h.Log, err)
	}
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), page)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, err)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, err)
	}
	var req dto.CommentCreate
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	cm, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, cm)
}
