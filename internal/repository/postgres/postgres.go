package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/telesante/telesante-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type availabilityRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type measurementRepository struct {
	db *sqlx.DB
}

type conseilRepository struct {
	db *sqlx.DB
}

type ordonnanceRepository struct {
	db *sqlx.DB
}

type notificationRepository struct {
	db *sqlx.DB
}

type messageRepository struct {
	db *sqlx.DB
}

type alertRepository struct {
	db *sqlx.DB
}

type structureRepository struct {
	db *sqlx.DB
}

type ficheRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewAvailabilityRepository(db *sqlx.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewMeasurementRepository(db *sqlx.DB) repository.MeasurementRepository {
	return &measurementRepository{db: db}
}

func NewConseilRepository(db *sqlx.DB) repository.ConseilRepository {
	return &conseilRepository{db: db}
}

func NewOrdonnanceRepository(db *sqlx.DB) repository.OrdonnanceRepository {
	return &ordonnanceRepository{db: db}
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func NewAlertRepository(db *sqlx.DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

func NewStructureRepository(db *sqlx.DB) repository.StructureRepository {
	return &structureRepository{db: db}
}

func NewFicheRepository(db *sqlx.DB) repository.FicheRepository {
	return &ficheRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
