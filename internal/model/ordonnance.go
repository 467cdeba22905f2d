package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Ordonnance is a prescription issued by a doctor for a patient. The
// medications list is persisted as a JSON document.
type Ordonnance struct {
	Base
	MedecinID       uuid.UUID       `db:"medecin_id" json:"medecin_id"`
	PatientID       uuid.UUID       `db:"patient_id" json:"patient_id"`
	MedicationsJSON json.RawMessage `db:"medications" json:"medications"`
	Notes           string          `db:"notes" json:"notes,omitempty"`
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Meds decodes the persisted medications list.
func (o *Ordonnance) Meds() ([]Medication, error) {
	var meds []Medication
	if len(o.MedicationsJSON) == 0 {
		return meds, nil
	}
	err := json.Unmarshal(o.MedicationsJSON, &meds)
	return meds, err
}

type CreateOrdonnanceRequest struct {
	PatientID   string       `json:"patient_id" binding:"required,uuid"`
	Medications []Medication `json:"medications" binding:"required,min=1"`
	Notes       string       `json:"notes"`
}
