package handler

import (
	"github.com/deppfellow/orderhub/internal/model"
	"github.com/deppfellow/orderhub/internal/validation"
	"github.com/oapi-codegen/nullable"
)

// ListRequest carries nothing; list endpoints take no input.
type ListRequest struct{}

func (r *ListRequest) Validate() error {
	return nil
}

// IDRequest addresses one row by its path id.
type IDRequest struct {
	ID int `param:"id" json:"-" validate:"required,min=1"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

// Create requests accept any subset of the entity's fields. A supplied id
// must be addressable by the id routes afterwards.

// validateCreateID accepts an absent or null id, or one of at least 1.
func validateCreateID(id nullable.Nullable[int]) error {
	if !id.IsSpecified() || id.IsNull() {
		return nil
	}
	if id.MustGet() < 1 {
		return validation.CustomValidationErrors{
			{Field: "id", Message: "must be at least 1"},
		}
	}
	return nil
}

type CreateUserRequest struct {
	model.UserPayload
}

func (r *CreateUserRequest) Validate() error {
	return validateCreateID(r.ID)
}

type CreateOrderRequest struct {
	model.OrderPayload
}

func (r *CreateOrderRequest) Validate() error {
	return validateCreateID(r.ID)
}

type CreateOfferRequest struct {
	model.OfferPayload
}

func (r *CreateOfferRequest) Validate() error {
	return validateCreateID(r.ID)
}

// Update requests take the id from the path; an "id" in the body is
// bound into the payload and ignored.

type UpdateUserRequest struct {
	ID int `param:"id" json:"-" validate:"required,min=1"`
	model.UserPayload
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateOrderRequest struct {
	ID int `param:"id" json:"-" validate:"required,min=1"`
	model.OrderPayload
}

func (r *UpdateOrderRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateOfferRequest struct {
	ID int `param:"id" json:"-" validate:"required,min=1"`
	model.OfferPayload
}

func (r *UpdateOfferRequest) Validate() error {
	return validation.Struct(r)
}
