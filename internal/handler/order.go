package handler

import (
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
	"github.com/labstack/echo/v4"
)

// OrderHandler serves /orders. List, Get and Delete come from the shared
// entity endpoints.
type OrderHandler struct {
	entityHandler[model.Order, *model.Order]
}

// NewOrderHandler builds the /orders handler on the order service.
func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		entityHandler: newEntityHandler(s, orders),
	}
}

// Create returns the order read back by its primary key.
func (h *OrderHandler) Create(c echo.Context, req *CreateOrderRequest) (*model.Order, error) {
	return h.service.Create(c.Request().Context(), &req.OrderPayload)
}

// Update patches the order named by the path id with the body's non-null
// fields and returns the stored row.
func (h *OrderHandler) Update(c echo.Context, req *UpdateOrderRequest) (*model.Order, error) {
	return h.service.Update(c.Request().Context(), req.ID, &req.OrderPayload)
}
