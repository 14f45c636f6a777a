package dto

import "github.com/aarondl/null/v8"

type CreateDeviceDTO struct {
	Category      string   `json:"category" validate:"required,device_category"`
	ItemCode      string   `json:"item_code" validate:"required,max=50"`
	Brand         string   `json:"brand" validate:"required,max=100"`
	Model         string   `json:"model" validate:"required,max=100"`
	SerialNumber  string   `json:"serial_number" validate:"omitempty,serial"`
	IMEI          string   `json:"imei" validate:"omitempty,numeric,len=15"`
	Condition     string   `json:"condition" validate:"required,oneof=new used refurbished broken"`
	Grade         string   `json:"grade" validate:"omitempty,oneof=A B C D"`
	StockStatus   string   `json:"stock_status" validate:"omitempty,oneof=in_stock in_repair reserved sold scrapped"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	SalePrice     *float64 `json:"sale_price" validate:"omitempty,gte=0"`
	Notes         string   `json:"notes" validate:"omitempty,max=2000"`
	OperatorID    *uint64  `json:"operator_id" validate:"omitempty,gt=0"`
	ClientID      *uint64  `json:"client_id" validate:"omitempty,gt=0"`

	// Если задано, вместе с устройством создаётся первое вмешательство
	InitialIntervention *CreateInterventionDTO `json:"initial_intervention,omitempty" validate:"omitempty"`
}

type UpdateDeviceDTO struct {
	Category      null.String  `json:"category" validate:"omitempty,device_category"`
	ItemCode      null.String  `json:"item_code" validate:"omitempty,max=50"`
	Brand         null.String  `json:"brand" validate:"omitempty,max=100"`
	Model         null.String  `json:"model" validate:"omitempty,max=100"`
	SerialNumber  null.String  `json:"serial_number" validate:"omitempty,serial"`
	IMEI          null.String  `json:"imei" validate:"omitempty,numeric,len=15"`
	Condition     null.String  `json:"condition" validate:"omitempty,oneof=new used refurbished broken"`
	Grade         null.String  `json:"grade" validate:"omitempty,oneof=A B C D"`
	StockStatus   null.String  `json:"stock_status" validate:"omitempty,oneof=in_stock in_repair reserved sold scrapped"`
	PurchasePrice null.Float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	SalePrice     null.Float64 `json:"sale_price" validate:"omitempty,gte=0"`
	PhotoPath     null.String  `json:"photo_path" validate:"omitempty,max=255"`
	Notes         null.String  `json:"notes" validate:"omitempty,max=2000"`
	OperatorID    null.Uint64  `json:"operator_id" validate:"omitempty,gt=0"`
	ClientID      null.Uint64  `json:"client_id" validate:"omitempty,gt=0"`
}

type DeviceDTO struct {
	ID            uint64   `json:"id"`
	Category      string   `json:"category"`
	ItemCode      string   `json:"item_code"`
	ProductCode   string   `json:"product_code"`
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

	Operator *ShortOperatorDTO `json:"operator"`
	Client   *ShortClientDTO   `json:"client"`

	InterventionsCount int64   `json:"interventions_count"`
	LastInterventionAt *string `json:"last_intervention_at"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// DeviceDetailDTO - карточка устройства со всеми вмешательствами и файлами.
type DeviceDetailDTO struct {
	Device        DeviceDTO         `json:"device"`
	Interventions []InterventionDTO `json:"interventions"`
	Files         []AttachmentDTO   `json:"files"`
}

// ImportResultDTO - итог импорта устройств из Excel.
type ImportResultDTO struct {
	Created int           `json:"created"`
	Skipped int           `json:"skipped"`
	Errors  []ImportError `json:"errors"`
}

type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
