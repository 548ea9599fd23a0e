package handler

import (
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health *HealthHandler
	Users  *UserHandler
	Orders *OrderHandler
	Offers *OfferHandler
}

// NewHandlers builds every handler on top of the service layer.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s, services),
		Users:  NewUserHandler(s, services.Users),
		Orders: NewOrderHandler(s, services.Orders),
		Offers: NewOfferHandler(s, services.Offers),
	}
}
