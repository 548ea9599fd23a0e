package model

import "github.com/oapi-codegen/nullable"

// User is a person acting as a customer or an executor.
type User struct {
	ID        int     `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName *string `json:"first_name" gorm:"size:30"`
	LastName  *string `json:"last_name" gorm:"size:30"`
	Age       *int    `json:"age"`
	Email     *string `json:"email" gorm:"size:100"`
	Role      *string `json:"role" gorm:"size:50"`
	Phone     *string `json:"phone" gorm:"size:15"`
}

func (User) TableName() string { return "users" }

func (u *User) GetID() int { return u.ID }

// UserPayload carries user fields from a request body or a fixture record.
type UserPayload struct {
	ID        nullable.Nullable[int]    `json:"id"`
	FirstName nullable.Nullable[string] `json:"first_name"`
	LastName  nullable.Nullable[string] `json:"last_name"`
	Age       nullable.Nullable[int]    `json:"age"`
	Email     nullable.Nullable[string] `json:"email"`
	Role      nullable.Nullable[string] `json:"role"`
	Phone     nullable.Nullable[string] `json:"phone"`
}

// ToModel builds a new row. Absent and null fields stay NULL; a missing
// id is assigned by the store.
func (p *UserPayload) ToModel() *User {
	u := &User{
		FirstName: valueOrNil(p.FirstName),
		LastName:  valueOrNil(p.LastName),
		Age:       valueOrNil(p.Age),
		Email:     valueOrNil(p.Email),
		Role:      valueOrNil(p.Role),
		Phone:     valueOrNil(p.Phone),
	}
	if id := valueOrNil(p.ID); id != nil {
		u.ID = *id
	}
	return u
}

// ApplyTo patches u. The id is never changed.
func (p *UserPayload) ApplyTo(u *User) {
	patch(&u.FirstName, p.FirstName)
	patch(&u.LastName, p.LastName)
	patch(&u.Age, p.Age)
	patch(&u.Email, p.Email)
	patch(&u.Role, p.Role)
	patch(&u.Phone, p.Phone)
}

// Missing lists the keys absent from the payload.
func (p *UserPayload) Missing() []string {
	return missing(
		field{"id", p.ID.IsSpecified()},
		field{"first_name", p.FirstName.IsSpecified()},
		field{"last_name", p.LastName.IsSpecified()},
		field{"age", p.Age.IsSpecified()},
		field{"email", p.Email.IsSpecified()},
		field{"role", p.Role.IsSpecified()},
		field{"phone", p.Phone.IsSpecified()},
	)
}
