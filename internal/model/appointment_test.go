package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentStatusIsValid(t *testing.T) {
	assert.True(t, AppointmentStatusPending.IsValid())
	assert.True(t, AppointmentStatusConfirmed.IsValid())
	assert.True(t, AppointmentStatusCancelled.IsValid())

	assert.False(t, AppointmentStatus("").IsValid())
	assert.False(t, AppointmentStatus("termine").IsValid())
	assert.False(t, AppointmentStatus("CONFIRME").IsValid())
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatusConfirmed.IsTerminal())
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-09-15"))
	assert.True(t, ValidDate("2026-02-28"))

	assert.False(t, ValidDate("15/09/2026"))
	assert.False(t, ValidDate("2026-13-01"))
	assert.False(t, ValidDate("2026-02-30"))
	assert.False(t, ValidDate(""))
}

func TestValidTimeOfDay(t *testing.T) {
	assert.True(t, ValidTimeOfDay("00:00"))
	assert.True(t, ValidTimeOfDay("23:59"))
	assert.True(t, ValidTimeOfDay("09:30"))

	assert.False(t, ValidTimeOfDay("24:00"))
	assert.False(t, ValidTimeOfDay("9:30"))
	assert.False(t, ValidTimeOfDay("09h30"))
	assert.False(t, ValidTimeOfDay(""))
}

func TestValidWeekday(t *testing.T) {
	for _, day := range []string{DayLundi, DayMardi, DayMercredi, DayJeudi, DayVendredi, DaySamedi, DayDimanche} {
		assert.True(t, ValidWeekday(day), day)
	}
	assert.False(t, ValidWeekday("monday"))
	assert.False(t, ValidWeekday("Lundi"))
	assert.False(t, ValidWeekday(""))
}
