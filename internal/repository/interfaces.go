package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
)

// ErrNotFound is returned by repositories when a referenced document does
// not resolve. Services translate it into a 404-equivalent domain error.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Archive(ctx context.Context, id uuid.UUID) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	}

	AvailabilityRepository interface {
		Create(ctx context.Context, slot *model.Availability) error
		Get(ctx context.Context, id uuid.UUID) (*model.Availability, error)
		Update(ctx context.Context, slot *model.Availability) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListByMedecin(ctx context.Context, medecinID uuid.UUID) ([]*model.Availability, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		// UpdateStatusFrom transitions statut to the given value only when
		// the current statut matches from, and reports whether a row changed.
		UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) (bool, error)
		// SetStatus overwrites statut unconditionally (used for cancel,
		// which is idempotent from any state).
		SetStatus(ctx context.Context, id uuid.UUID, statut model.AppointmentStatus) error
		UpdateSchedule(ctx context.Context, id uuid.UUID, date, heure string) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	MeasurementRepository interface {
		Create(ctx context.Context, m *model.Measurement) error
		List(ctx context.Context, filters *model.MeasurementFilters) ([]*model.Measurement, error)
	}

	ConseilRepository interface {
		Create(ctx context.Context, c *model.Conseil) error
		Get(ctx context.Context, id uuid.UUID) (*model.Conseil, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Conseil, error)
	}

	OrdonnanceRepository interface {
		Create(ctx context.Context, o *model.Ordonnance) error
		Get(ctx context.Context, id uuid.UUID) (*model.Ordonnance, error)
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Ordonnance, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, n *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	MessageRepository interface {
		Create(ctx context.Context, m *model.Message) error
		Get(ctx context.Context, id uuid.UUID) (*model.Message, error)
		ListConversation(ctx context.Context, a, b uuid.UUID) ([]*model.Message, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
	}

	AlertRepository interface {
		Create(ctx context.Context, a *model.Alert) error
		Get(ctx context.Context, id uuid.UUID) (*model.Alert, error)
		ListOpen(ctx context.Context) ([]*model.Alert, error)
		Close(ctx context.Context, id, closedBy uuid.UUID) error
	}

	StructureRepository interface {
		Create(ctx context.Context, s *model.Structure) error
		Get(ctx context.Context, id uuid.UUID) (*model.Structure, error)
		List(ctx context.Context, kind string) ([]*model.Structure, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	FicheRepository interface {
		GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.FicheSante, error)
		Upsert(ctx context.Context, f *model.FicheSante) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
