package handler

import (
	"fmt"

	"github.com/deppfellow/orderhub/internal/repository"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
	"github.com/labstack/echo/v4"
)

// entityHandler holds the endpoints every entity shares. The per-entity
// handlers embed it and add create and update, whose request types
// differ.
type entityHandler[E any, R repository.Row[E]] struct {
	Handler
	service *service.CRUDService[E, R]
}

func newEntityHandler[E any, R repository.Row[E]](s *server.Server, svc *service.CRUDService[E, R]) entityHandler[E, R] {
	return entityHandler[E, R]{
		Handler: NewHandler(s),
		service: svc,
	}
}

// List returns every row ordered by id.
func (h *entityHandler[E, R]) List(c echo.Context, _ *ListRequest) ([]E, error) {
	return h.service.List(c.Request().Context())
}

// Get returns the row named by the path id.
func (h *entityHandler[E, R]) Get(c echo.Context, req *IDRequest) (*E, error) {
	return h.service.Get(c.Request().Context(), req.ID)
}

// Delete answers with a confirmation such as "user 5 deleted".
func (h *entityHandler[E, R]) Delete(c echo.Context, req *IDRequest) (string, error) {
	if err := h.service.Delete(c.Request().Context(), req.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d deleted", h.service.Entity(), req.ID), nil
}
