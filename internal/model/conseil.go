package model

import (
	"github.com/google/uuid"
)

// Conseil is an advice note written by a doctor for a patient.
type Conseil struct {
	Base
	MedecinID uuid.UUID `db:"medecin_id" json:"medecin_id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Titre     string    `db:"titre" json:"titre"`
	Contenu   string    `db:"contenu" json:"contenu"`
}

type CreateConseilRequest struct {
	PatientID string `json:"patient_id" binding:"required,uuid"`
	Titre     string `json:"titre" binding:"required"`
	Contenu   string `json:"contenu" binding:"required"`
}
