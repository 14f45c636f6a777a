package entities

import (
	"time"

	"refurb-tracker/pkg/types"
)

type ClientOrder struct {
	ID           uint64     `json:"id"`
	ClientID     uint64     `json:"client_id"`
	DeviceID     *uint64    `json:"device_id"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	OrderDate    time.Time  `json:"order_date"`
	ExpectedDate *time.Time `json:"expected_date"`
	Deposit      *float64   `json:"deposit"`
	Notes        *string    `json:"notes"`

	types.BaseEntity

	// Поля из client_orders_view
	ClientName     *string `db:"-"`
	DeviceCategory *string `db:"-"`
	DeviceItemCode *string `db:"-"`
}
