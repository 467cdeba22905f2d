package model

import (
	"github.com/google/uuid"
)

// Days of week, French wire values.
const (
	DayLundi    = "lundi"
	DayMardi    = "mardi"
	DayMercredi = "mercredi"
	DayJeudi    = "jeudi"
	DayVendredi = "vendredi"
	DaySamedi   = "samedi"
	DayDimanche = "dimanche"
)

var weekdays = map[string]bool{
	DayLundi:    true,
	DayMardi:    true,
	DayMercredi: true,
	DayJeudi:    true,
	DayVendredi: true,
	DaySamedi:   true,
	DayDimanche: true,
}

// ValidWeekday reports whether day is one of the seven accepted values.
func ValidWeekday(day string) bool {
	return weekdays[day]
}

// Availability is a recurring weekly time window published by a doctor.
// Windows are advisory: nothing ties them to appointment bookings, and
// overlapping windows for the same day are not rejected.
type Availability struct {
	Base
	MedecinID uuid.UUID `db:"medecin_id" json:"medecin_id"`
	Day       string    `db:"day" json:"day"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Active    bool      `db:"active" json:"active"`
}

type CreateAvailabilityRequest struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required,rdvheure"`
	EndTime   string `json:"end_time" binding:"required,rdvheure"`
}

type UpdateAvailabilityRequest struct {
	Day       *string `json:"day"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Active    *bool   `json:"active"`
}
