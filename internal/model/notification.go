package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types, one per domain event that produces a document.
const (
	NotificationAppointmentRequested   = "appointment_requested"
	NotificationAppointmentConfirmed   = "appointment_confirmed"
	NotificationAppointmentCancelled   = "appointment_cancelled"
	NotificationAppointmentRescheduled = "appointment_rescheduled"
	NotificationNewMessage             = "new_message"
	NotificationNewConseil             = "new_conseil"
	NotificationNewOrdonnance          = "new_ordonnance"
	NotificationAlert                  = "alert"
)

// Notification is a polled in-app notification document. Clients re-fetch
// to observe new entries, there is no push transport.
type Notification struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	Type      string     `db:"type" json:"type"`
	Title     string     `db:"title" json:"title"`
	Content   string     `db:"content" json:"content"`
	Read      bool       `db:"read" json:"read"`
	ReadAt    *time.Time `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
