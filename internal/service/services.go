package service

import (
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/deppfellow/orderhub/internal/repository"
	"github.com/deppfellow/orderhub/internal/server"
)

type (
	UserService  = CRUDService[model.User, *model.User]
	OrderService = CRUDService[model.Order, *model.Order]
	OfferService = CRUDService[model.Offer, *model.Offer]
)

// Services groups one service per entity.
type Services struct {
	Users  *UserService
	Orders *OrderService
	Offers *OfferService
}

// NewService builds the services on the repositories.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users:  newCRUDService(s, repos.Users, "user"),
		Orders: newCRUDService(s, repos.Orders, "order"),
		Offers: newCRUDService(s, repos.Offers, "offer"),
	}, nil
}
