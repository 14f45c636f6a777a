package dto

import "github.com/aarondl/null/v8"

type CreateOperatorDTO struct {
	Name    string `json:"name" validate:"required,max=100"`
	Surname string `json:"surname" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,custom_email"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Role    string `json:"role" validate:"required,oneof=admin technician"`
	Active  *bool  `json:"active"`
}

type UpdateOperatorDTO struct {
	Name    null.String `json:"name" validate:"omitempty,max=100"`
	Surname null.String `json:"surname" validate:"omitempty,max=100"`
	Email   null.String `json:"email" validate:"omitempty,custom_email"`
	Phone   null.String `json:"phone" validate:"omitempty,phone"`
	Role    null.String `json:"role" validate:"omitempty,oneof=admin technician"`
	Active  null.Bool   `json:"active"`
}

type OperatorDTO struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
