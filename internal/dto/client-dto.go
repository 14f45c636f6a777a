package dto

import "github.com/aarondl/null/v8"

type CreateClientDTO struct {
	ClientType  string `json:"client_type" validate:"required,oneof=private company"`
	Name        string `json:"name" validate:"required_if=ClientType private,max=100"`
	Surname     string `json:"surname" validate:"omitempty,max=100"`
	CompanyName string `json:"company_name" validate:"required_if=ClientType company,max=200"`
	TaxCode     string `json:"tax_code" validate:"omitempty,max=32"`
	VatNumber   string `json:"vat_number" validate:"omitempty,vat_number"`
	Email       string `json:"email" validate:"omitempty,custom_email"`
	Phone       string `json:"phone" validate:"omitempty,phone"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	City        string `json:"city" validate:"omitempty,max=100"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateClientDTO struct {
	ClientType  null.String `json:"client_type" validate:"omitempty,oneof=private company"`
	Name        null.String `json:"name" validate:"omitempty,max=100"`
	Surname     null.String `json:"surname" validate:"omitempty,max=100"`
	CompanyName null.String `json:"company_name" validate:"omitempty,max=200"`
	TaxCode     null.String `json:"tax_code" validate:"omitempty,max=32"`
	VatNumber   null.String `json:"vat_number" validate:"omitempty,vat_number"`
	Email       null.String `json:"email" validate:"omitempty,custom_email"`
	Phone       null.String `json:"phone" validate:"omitempty,phone"`
	Address     null.String `json:"address" validate:"omitempty,max=255"`
	City        null.String `json:"city" validate:"omitempty,max=100"`
	Notes       null.String `json:"notes" validate:"omitempty,max=2000"`
}

type ClientDTO struct {
	ID          uint64  `json:"id"`
	ClientType  string  `json:"client_type"`
	DisplayName string  `json:"display_name"`
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	CompanyName *string `json:"company_name"`
	TaxCode     *string `json:"tax_code"`
	VatNumber   *string `json:"vat_number"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
