package repository

import (
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/deppfellow/orderhub/internal/server"
)

// Per-entity stores.
type (
	UserRepository  = Store[model.User, *model.User]
	OrderRepository = Store[model.Order, *model.Order]
	OfferRepository = Store[model.Offer, *model.Offer]
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users  *UserRepository
	Orders *OrderRepository
	Offers *OfferRepository
}

// NewRepositories builds every repository on the server's store handle.
func NewRepositories(s *server.Server) *Repositories {
	db := s.DB.DB
	return &Repositories{
		Users:  NewStore[model.User, *model.User](db),
		Orders: NewStore[model.Order, *model.Order](db),
		Offers: NewStore[model.Offer, *model.Offer](db),
	}
}
