package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/handler"
)

func RegisterUsers(e *echo.Echo, h *handler.UserHandler) {
	g := e.Group("/users")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterItems mounts the catalog.  Only search responses are cached:
// they are identical for every caller, unlike item views that depend on
// whether the caller owns the item.
func RegisterItems(e *echo.Echo, h *handler.ItemHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/items")
	g.POST("", h.Create)
	g.GET("", h.ListOwn)
	g.GET("/search", h.Search, cache)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/comment", h.AddComment)
}

func RegisterBookings(e *echo.Echo, h *handler.BookingHandler) {
	g := e.Group("/bookings")
	g.POST("", h.Create)
	g.GET("", h.ListForBooker)
	g.GET("/owner", h.ListForOwner)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Decide)
	g.DELETE("/:id", h.Delete)
}

func RegisterRequests(e *echo.Echo, h *handler.RequestHandler) {
	g := e.Group("/requests")
	g.POST("", h.Create)
	g.GET("", h.ListOwn)
	g.GET("/all", h.ListOthers)
	g.GET("/:id", h.Get)
}
