package model

import (
	"time"

	"github.com/google/uuid"
)

type MeasurementType string

const (
	MeasurementGlycemie    MeasurementType = "glycemie"
	MeasurementTension     MeasurementType = "tension"
	MeasurementPoids       MeasurementType = "poids"
	MeasurementPouls       MeasurementType = "pouls"
	MeasurementTemperature MeasurementType = "temperature"
)

func (t MeasurementType) IsValid() bool {
	switch t {
	case MeasurementGlycemie, MeasurementTension, MeasurementPoids,
		MeasurementPouls, MeasurementTemperature:
		return true
	}
	return false
}

// Measurement is an append-only health reading attached to a patient.
// Value format depends on Type (e.g. "12/8" for tension, "36.7" for
// temperature), records are never mutated after creation.
type Measurement struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	PatientID  uuid.UUID       `db:"patient_id" json:"patient_id"`
	Type       MeasurementType `db:"type" json:"type"`
	Value      string          `db:"value" json:"value"`
	MeasuredAt time.Time       `db:"measured_at" json:"measured_at"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

type CreateMeasurementRequest struct {
	Type       MeasurementType `json:"type" binding:"required"`
	Value      string          `json:"value" binding:"required"`
	MeasuredAt *time.Time      `json:"measured_at"`
}

type MeasurementFilters struct {
	PatientID uuid.UUID
	Type      MeasurementType
	Order     string
}
