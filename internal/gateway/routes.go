package gateway

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/dto"
	"github.com/iliyamo/shareit/internal/middleware"
)

func (g *Gateway) register(e *echo.Echo) {
	users := e.Group("/users", middleware.Identity(""))
	users.POST("", g.pass(body[dto.UserCreate]()))
	users.GET("", g.pass())
	users.GET("/:id", g.pass(pathID))
	users.PATCH("/:id", g.pass(pathID, body[dto.UserPatch]()))
	users.DELETE("/:id", g.pass(pathID))

	items := e.Group("/items", requireUser)
	items.POST("", g.pass(body[dto.ItemCreate]()))
	items.GET("", g.pass())
	items.GET("/search", g.pass(listing(false)))
	items.GET("/:id", g.pass(pathID))
	items.PATCH("/:id", g.pass(pathID, body[dto.ItemPatch]()))
	items.DELETE("/:id", g.pass(pathID))
	items.POST("/:id/comment", g.pass(pathID, body[dto.CommentCreate]()))

	bookings := e.Group("/bookings", requireUser)
	bookings.POST("", g.pass(body(func(b *dto.BookingCreate) error { return b.CheckTimes(g.Now()) })))
	bookings.GET("", g.pass(listing(true)))
	bookings.GET("/owner", g.pass(listing(true)))
	bookings.GET("/:id", g.pass(pathID))
	bookings.PATCH("/:id", g.pass(pathID, approved))
	bookings.DELETE("/:id", g.pass(pathID))

	requests := e.Group("/requests", requireUser)
	requests.POST("", g.pass(body[dto.RequestCreate]()))
	requests.GET("", g.pass())
	requests.GET("/all", g.pass(listing(false)))
	requests.GET("/:id", g.pass(pathID))
}
