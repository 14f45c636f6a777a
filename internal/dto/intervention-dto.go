package dto

import "github.com/aarondl/null/v8"

type CreateInterventionDTO struct {
	DeviceID         uint64   `json:"device_id" validate:"omitempty,gt=0"`
	OperatorID       *uint64  `json:"operator_id" validate:"omitempty,gt=0"`
	InterventionType string   `json:"intervention_type" validate:"required,oneof=diagnosis repair cleaning data_wipe upgrade quality_check"`
	Description      string   `json:"description" validate:"omitempty,max=4000"`
	Status           string   `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Cost             *float64 `json:"cost" validate:"omitempty,gte=0"`
}

type UpdateInterventionDTO struct {
	OperatorID       null.Uint64  `json:"operator_id" validate:"omitempty,gt=0"`
	InterventionType null.String  `json:"intervention_type" validate:"omitempty,oneof=diagnosis repair cleaning data_wipe upgrade quality_check"`
	Description      null.String  `json:"description" validate:"omitempty,max=4000"`
	Status           null.String  `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Cost             null.Float64 `json:"cost" validate:"omitempty,gte=0"`
	StartedAt        null.Time    `json:"started_at"`
	CompletedAt      null.Time    `json:"completed_at"`
}

type InterventionDTO struct {
	ID               uint64            `json:"id"`
	Device           ShortDeviceDTO    `json:"device"`
	Operator         *ShortOperatorDTO `json:"operator"`
	InterventionType string            `json:"intervention_type"`
	Description      *string           `json:"description"`
	Status           string            `json:"status"`
	Cost             *float64          `json:"cost"`
	StartedAt        *string           `json:"started_at"`
	CompletedAt      *string           `json:"completed_at"`
	CreatedAt        string            `json:"created_at"`
	UpdatedAt        string            `json:"updated_at"`
}
