package model

import "github.com/oapi-codegen/nullable"

// Order is a job posted by a customer and taken by an executor. Dates are
// free-form strings.
type Order struct {
	ID          int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        *string `json:"name" gorm:"size:30"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Address     *string `json:"address"`
	Price       *int    `json:"price"`
	CustomerID  *int    `json:"customer_id"`
	ExecutorID  *int    `json:"executor_id"`

	Customer *User `json:"-" gorm:"foreignKey:CustomerID"`
	Executor *User `json:"-" gorm:"foreignKey:ExecutorID"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) GetID() int { return o.ID }

type OrderPayload struct {
	ID          nullable.Nullable[int]    `json:"id"`
	Name        nullable.Nullable[string] `json:"name"`
	Description nullable.Nullable[string] `json:"description"`
	StartDate   nullable.Nullable[string] `json:"start_date"`
	EndDate     nullable.Nullable[string] `json:"end_date"`
	Address     nullable.Nullable[string] `json:"address"`
	Price       nullable.Nullable[int]    `json:"price"`
	CustomerID  nullable.Nullable[int]    `json:"customer_id"`
	ExecutorID  nullable.Nullable[int]    `json:"executor_id"`
}

func (p *OrderPayload) ToModel() *Order {
	o := &Order{
		Name:        valueOrNil(p.Name),
		Description: valueOrNil(p.Description),
		StartDate:   valueOrNil(p.StartDate),
		EndDate:     valueOrNil(p.EndDate),
		Address:     valueOrNil(p.Address),
		Price:       valueOrNil(p.Price),
		CustomerID:  valueOrNil(p.CustomerID),
		ExecutorID:  valueOrNil(p.ExecutorID),
	}
	if id := valueOrNil(p.ID); id != nil {
		o.ID = *id
	}
	return o
}

func (p *OrderPayload) ApplyTo(o *Order) {
	patch(&o.Name, p.Name)
	patch(&o.Description, p.Description)
	patch(&o.StartDate, p.StartDate)
	patch(&o.EndDate, p.EndDate)
	patch(&o.Address, p.Address)
	patch(&o.Price, p.Price)
	patch(&o.CustomerID, p.CustomerID)
	patch(&o.ExecutorID, p.ExecutorID)
}

func (p *OrderPayload) Missing() []string {
	return missing(
		field{"id", p.ID.IsSpecified()},
		field{"name", p.Name.IsSpecified()},
		field{"description", p.Description.IsSpecified()},
		field{"start_date", p.StartDate.IsSpecified()},
		field{"end_date", p.EndDate.IsSpecified()},
		field{"address", p.Address.IsSpecified()},
		field{"price", p.Price.IsSpecified()},
		field{"customer_id", p.CustomerID.IsSpecified()},
		field{"executor_id", p.ExecutorID.IsSpecified()},
	)
}
