package model

import (
	"time"

	"github.com/google/uuid"
)

// FicheSante is a patient's static health record. One per patient,
// created lazily on first write.
type FicheSante struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PatientID         uuid.UUID `db:"patient_id" json:"patient_id"`
	BloodType         string    `db:"blood_type" json:"blood_type,omitempty"`
	Allergies         string    `db:"allergies" json:"allergies,omitempty"`
	ChronicConditions string    `db:"chronic_conditions" json:"chronic_conditions,omitempty"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type UpsertFicheRequest struct {
	BloodType         *string `json:"blood_type"`
	Allergies         *string `json:"allergies"`
	ChronicConditions *string `json:"chronic_conditions"`
}
