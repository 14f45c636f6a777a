package entities

import (
	"time"

	"refurb-tracker/pkg/types"
)

const (
	InterventionPending    = "pending"
	InterventionInProgress = "in_progress"
	InterventionCompleted  = "completed"
	InterventionCancelled  = "cancelled"
)

type Intervention struct {
	ID               uint64     `json:"id"`
	DeviceID         uint64     `json:"device_id"`
	OperatorID       *uint64    `json:"operator_id"`
	InterventionType string     `json:"intervention_type"`
	Description      *string    `json:"description"`
	Status           string     `json:"status"`
	Cost             *float64   `json:"cost"`
	StartedAt        *time.Time `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`

	types.BaseEntity

	// Поля из interventions_view
	DeviceCategory *string `db:"-"`
	DeviceItemCode *string `db:"-"`
	DeviceBrand    *string `db:"-"`
	DeviceModel    *string `db:"-"`
	OperatorName   *string `db:"-"`
}
