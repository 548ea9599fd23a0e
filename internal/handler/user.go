package handler

import (
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/deppfellow/orderhub/internal/server"
	"github.com/deppfellow/orderhub/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler serves /users. List, Get and Delete come from the shared
// entity endpoints.
type UserHandler struct {
	entityHandler[model.User, *model.User]
}

// NewUserHandler builds the /users handler on the user service.
func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		entityHandler: newEntityHandler(s, users),
	}
}

// Create stores a new user and returns it as read back from the store.
func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (*model.User, error) {
	return h.service.Create(c.Request().Context(), &req.UserPayload)
}

// Update patches the user named by the path id with the body's non-null
// fields and returns the stored row.
func (h *UserHandler) Update(c echo.Context, req *UpdateUserRequest) (*model.User, error) {
	return h.service.Update(c.Request().Context(), req.ID, &req.UserPayload)
}
