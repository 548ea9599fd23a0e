package handler

import (
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
	"github.com/labstack/echo/v4"
)

// OfferHandler serves /offers. List, Get and Delete come from the shared
// entity endpoints.
type OfferHandler struct {
	entityHandler[model.Offer, *model.Offer]
}

// NewOfferHandler builds the /offers handler on the offer service.
func NewOfferHandler(s *server.Server, offers *service.OfferService) *OfferHandler {
	return &OfferHandler{
		entityHandler: newEntityHandler(s, offers),
	}
}

// Create stores a new offer and returns it as read back from the store.
func (h *OfferHandler) Create(c echo.Context, req *CreateOfferRequest) (*model.Offer, error) {
	return h.service.Create(c.Request().Context(), &req.OfferPayload)
}

// Update patches the offer named by the path id with the body's non-null
// fields and returns the stored row.
func (h *OfferHandler) Update(c echo.Context, req *UpdateOfferRequest) (*model.Offer, error) {
	return h.service.Update(c.Request().Context(), req.ID, &req.OfferPayload)
}
