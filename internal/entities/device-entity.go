package entities

import (
	"time"

	"refurb-tracker/pkg/types"
)

const (
	StockInStock  = "in_stock"
	StockInRepair = "in_repair"
	StockReserved = "reserved"
	StockSold     = "sold"
	StockScrapped = "scrapped"
)

type Device struct {
	ID            uint64   `json:"id"`
	Category      string   `json:"category"`
	ItemCode      string   `json:"item_code"`
	Brand         string   `json:"brand"`
	Model         string   `json:"model"`
	SerialNumber  *string  `json:"serial_number"`
	IMEI          *string  `json:"imei"`
	Condition     string   `json:"condition"`
	Grade         *string  `json:"grade"`
	StockStatus   string   `json:"stock_status"`
	PurchasePrice *float64 `json:"purchase_price"`
	SalePrice     *float64 `json:"sale_price"`
	PhotoPath     *string  `json:"photo_path"`
	Notes         *string  `json:"notes"`
	OperatorID    *uint64  `json:"operator_id"`
	ClientID      *uint64  `json:"client_id"`

	types.BaseEntity

	// Поля из devices_view, пустые при чтении из базовой таблицы
	OperatorName       *string    `db:"-"`
	ClientName         *string    `db:"-"`
	InterventionsCount int64      `db:"-"`
	LastInterventionAt *time.Time `db:"-"`
}
