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

func (r *availabilityRepository) Create(ctx context.Context, slot *model.Availability) error {
	query := `
		INSERT INTO availabilities (
			id, medecin_id, day, start_time, end_time, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID,
		slot.MedecinID,
		slot.Day,
		slot.StartTime,
		slot.EndTime,
		slot.Active,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Get(ctx context.Context, id uuid.UUID) (*model.Availability, error) {
	query := `
		SELECT id, medecin_id, day, start_time, end_time, active,
			   created_at, updated_at, deleted_at
		FROM availabilities
		WHERE id = $1
	`
	var slot model.Availability
	err := r.db.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return &slot, nil
}

func (r *availabilityRepository) Update(ctx context.Context, slot *model.Availability) error {
	query := `
		UPDATE availabilities
		SET day = $1, start_time = $2, end_time = $3, active = $4, updated_at = $5
		WHERE id = $6
	`
	slot.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		slot.Day,
		slot.StartTime,
		slot.EndTime,
		slot.Active,
		slot.UpdatedAt,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
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

func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM availabilities WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
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

func (r *availabilityRepository) ListByMedecin(ctx context.Context, medecinID uuid.UUID) ([]*model.Availability, error) {
	query := `
		SELECT id, medecin_id, day, start_time, end_time, active,
			   created_at, updated_at, deleted_at
		FROM availabilities
		WHERE medecin_id = $1
		ORDER BY day ASC, start_time ASC
	`
	var slots []*model.Availability
	err := r.db.SelectContext(ctx, &slots, query, medecinID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availabilities: %w", err)
	}
	return slots, nil
}
