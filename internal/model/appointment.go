package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

// Appointment statuses. The French literals are the wire format, both
// mobile clients match on the exact strings.
const (
	AppointmentStatusPending   AppointmentStatus = "en_attente"
	AppointmentStatusConfirmed AppointmentStatus = "confirme"
	AppointmentStatusCancelled AppointmentStatus = "annule"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// IsValid reports whether s is one of the three persisted statuses.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCancelled
}

// Appointment links one patient and one doctor on a given date. Date and
// Heure are stored as strings in the platform's canonical formats
// (YYYY-MM-DD and HH:MM) so they sort lexicographically.
type Appointment struct {
	Base
	PatientID        uuid.UUID         `db:"patient_id" json:"patientId"`
	MedecinID        uuid.UUID         `db:"medecin_id" json:"medecinId"`
	Date             string            `db:"date" json:"date"`
	Heure            string            `db:"heure" json:"heure,omitempty"`
	TypeConsultation string            `db:"type_consultation" json:"typeConsultation,omitempty"`
	Statut           AppointmentStatus `db:"statut" json:"statut"`
}

type CreateAppointmentRequest struct {
	PatientID        string `json:"patientId" binding:"required,uuid"`
	MedecinID        string `json:"medecinId" binding:"required,uuid"`
	Date             string `json:"date" binding:"required,rdvdate"`
	Heure            string `json:"heure" binding:"omitempty,rdvheure"`
	TypeConsultation string `json:"typeConsultation"`
}

// UpdateAppointmentRequest accepts any subset of statut/date/heure.
type UpdateAppointmentRequest struct {
	Statut *AppointmentStatus `json:"statut"`
	Date   *string            `json:"date"`
	Heure  *string            `json:"heure"`
}

type UpdateStatusRequest struct {
	Statut AppointmentStatus `json:"statut" binding:"required"`
}

type RescheduleRequest struct {
	Date  string `json:"date" binding:"required,rdvdate"`
	Heure string `json:"heure" binding:"omitempty,rdvheure"`
}

// SortOrder values for appointment listings.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

type AppointmentFilters struct {
	MedecinID uuid.UUID
	PatientID uuid.UUID
	Statut    AppointmentStatus
	Order     string
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTimeOfDay reports whether s is a well-formed HH:MM time.
// time.Parse alone is too lenient here, it accepts single-digit hours.
func ValidTimeOfDay(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
