package dto

import "github.com/aarondl/null/v8"

type CreateClientOrderDTO struct {
	ClientID     uint64   `json:"client_id" validate:"required,gt=0"`
	DeviceID     *uint64  `json:"device_id" validate:"omitempty,gt=0"`
	Description  string   `json:"description" validate:"required,max=2000"`
	Status       string   `json:"status" validate:"omitempty,oneof=open ordered received delivered cancelled"`
	OrderDate    string   `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	ExpectedDate string   `json:"expected_date" validate:"omitempty,datetime=2006-01-02"`
	Deposit      *float64 `json:"deposit" validate:"omitempty,gte=0"`
	Notes        string   `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateClientOrderDTO struct {
	ClientID     null.Uint64  `json:"client_id" validate:"omitempty,gt=0"`
	DeviceID     null.Uint64  `json:"device_id" validate:"omitempty,gt=0"`
	Description  null.String  `json:"description" validate:"omitempty,max=2000"`
	Status       null.String  `json:"status" validate:"omitempty,oneof=open ordered received delivered cancelled"`
	OrderDate    null.String  `json:"order_date" validate:"omitempty,datetime=2006-01-02"`
	ExpectedDate null.String  `json:"expected_date" validate:"omitempty,datetime=2006-01-02"`
	Deposit      null.Float64 `json:"deposit" validate:"omitempty,gte=0"`
	Notes        null.String  `json:"notes" validate:"omitempty,max=2000"`
}

type ClientOrderDTO struct {
	ID           uint64          `json:"id"`
	Client       ShortClientDTO  `json:"client"`
	Device       *ShortDeviceDTO `json:"device"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	OrderDate    string          `json:"order_date"`
	ExpectedDate *string         `json:"expected_date"`
	Deposit      *float64        `json:"deposit"`
	Notes        *string         `json:"notes"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}
