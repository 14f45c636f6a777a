package entities

import "refurb-tracker/pkg/types"

type Operator struct {
	ID      uint64  `json:"id"`
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Role    string  `json:"role"`
	Active  bool    `json:"active"`

	types.BaseEntity
}

func (o Operator) FullName() string {
	return joinName(o.Name, o.Surname)
}
