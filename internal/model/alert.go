package model

import (
	"time"

	"github.com/google/uuid"
)

type AlertStatus string

const (
	AlertStatusOpen   AlertStatus = "open"
	AlertStatusClosed AlertStatus = "closed"
)

// Alert is an emergency signal raised by a patient, optionally carrying
// the device position at the time of the call.
type Alert struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	PatientID uuid.UUID   `db:"patient_id" json:"patient_id"`
	Message   string      `db:"message" json:"message,omitempty"`
	Latitude  *float64    `db:"latitude" json:"latitude,omitempty"`
	Longitude *float64    `db:"longitude" json:"longitude,omitempty"`
	Status    AlertStatus `db:"status" json:"status"`
	ClosedBy  *uuid.UUID  `db:"closed_by" json:"closed_by,omitempty"`
	ClosedAt  *time.Time  `db:"closed_at" json:"closed_at,omitempty"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

type RaiseAlertRequest struct {
	Message   string   `json:"message"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
