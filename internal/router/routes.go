package router

import (
	"net/http"

	"github.com/deppfellow/orderhub/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")
	users.GET("", handler.Handle(h.Users.Handler, h.Users.List, http.StatusOK))
	users.POST("", handler.Handle(h.Users.Handler, h.Users.Create, http.StatusCreated))
	users.GET("/:id", handler.Handle(h.Users.Handler, h.Users.Get, http.StatusOK))
	users.PUT("/:id", handler.Handle(h.Users.Handler, h.Users.Update, http.StatusOK))
	users.DELETE("/:id", handler.HandleText(h.Users.Handler, h.Users.Delete, http.StatusOK))
}

func registerOrderRoutes(r *echo.Echo, h *handler.Handlers) {
	orders := r.Group("/orders")
	orders.GET("", handler.Handle(h.Orders.Handler, h.Orders.List, http.StatusOK))
	orders.POST("", handler.Handle(h.Orders.Handler, h.Orders.Create, http.StatusCreated))
	orders.GET("/:id", handler.Handle(h.Orders.Handler, h.Orders.Get, http.StatusOK))
	orders.PUT("/:id", handler.Handle(h.Orders.Handler, h.Orders.Update, http.StatusOK))
	orders.DELETE("/:id", handler.HandleText(h.Orders.Handler, h.Orders.Delete, http.StatusOK))
}

func registerOfferRoutes(r *echo.Echo, h *handler.Handlers) {
	offers := r.Group("/offers")
	offers.GET("", handler.Handle(h.Offers.Handler, h.Offers.List, http.StatusOK))
	offers.POST("", handler.Handle(h.Offers.Handler, h.Offers.Create, http.StatusCreated))
	offers.GET("/:id", handler.Handle(h.Offers.Handler, h.Offers.Get, http.StatusOK))
	offers.PUT("/:id", handler.Handle(h.Offers.Handler, h.Offers.Update, http.StatusOK))
	offers.DELETE("/:id", handler.HandleText(h.Offers.Handler, h.Offers.Delete, http.StatusOK))
}
