package model

import "github.com/oapi-codegen/nullable"

// Offer is an executor's bid on an order.
type Offer struct {
	ID         int  `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    *int `json:"order_id"`
	ExecutorID *int `json:"executor_id"`

	Order    *Order `json:"-" gorm:"foreignKey:OrderID"`
	Executor *User  `json:"-" gorm:"foreignKey:ExecutorID"`
}

func (Offer) TableName() string { return "offers" }

func (o *Offer) GetID() int { return o.ID }

type OfferPayload struct {
	ID         nullable.Nullable[int] `json:"id"`
	OrderID    nullable.Nullable[int] `json:"order_id"`
	ExecutorID nullable.Nullable[int] `json:"executor_id"`
}

func (p *OfferPayload) ToModel() *Offer {
	o := &Offer{
		OrderID:    valueOrNil(p.OrderID),
		ExecutorID: valueOrNil(p.ExecutorID),
	}
	if id := valueOrNil(p.ID); id != nil {
		o.ID = *id
	}
	return o
}

func (p *OfferPayload) ApplyTo(o *Offer) {
	patch(&o.OrderID, p.OrderID)
	patch(&o.ExecutorID, p.ExecutorID)
}

func (p *OfferPayload) Missing() []string {
	return missing(
		field{"id", p.ID.IsSpecified()},
		field{"order_id", p.OrderID.IsSpecified()},
		field{"executor_id", p.ExecutorID.IsSpecified()},
	)
}
