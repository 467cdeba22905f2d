package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
)

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_id, medecin_id, date, heure,
			type_consultation, statut, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.PatientID,
		apt.MedecinID,
		apt.Date,
		apt.Heure,
		apt.TypeConsultation,
		apt.Statut,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_id, medecin_id, date, heure,
			   type_consultation, statut, created_at, updated_at, deleted_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

// UpdateStatusFrom is the guarded transition used by confirm: the WHERE
// clause makes concurrent confirmations resolve in the store rather than
// last-write-wins in the service.
func (r *appointmentRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to model.AppointmentStatus) (bool, error) {
	query := `
		UPDATE appointments
		SET statut = $1, updated_at = $2
		WHERE id = $3 AND statut = $4
	`
	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *appointmentRepository) SetStatus(ctx context.Context, id uuid.UUID, statut model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET statut = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, statut, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, date, heure string) error {
	query := `
		UPDATE appointments
		SET date = $1, heure = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, date, heure, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `
		SELECT id, patient_id, medecin_id, date, heure,
			   type_consultation, statut, created_at, updated_at, deleted_at
		FROM appointments
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filters.MedecinID != uuid.Nil {
		query += fmt.Sprintf(" AND medecin_id = $%d", argCount)
		args = append(args, filters.MedecinID)
		argCount++
	}

	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}

	if filters.Statut != "" {
		query += fmt.Sprintf(" AND statut = $%d", argCount)
		args = append(args, filters.Statut)
		argCount++
	}

	if filters.Order == model.SortDescending {
		query += " ORDER BY date DESC, heure DESC"
	} else {
		query += " ORDER BY date ASC, heure ASC"
	}

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
