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

func (r *ordonnanceRepository) Create(ctx context.Context, o *model.Ordonnance) error {
	query := `
		INSERT INTO ordonnances (
			id, medecin_id, patient_id, medications, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		o.ID,
		o.MedecinID,
		o.PatientID,
		o.MedicationsJSON,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ordonnance: %w", err)
	}
	return nil
}

func (r *ordonnanceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Ordonnance, error) {
	query := `
		SELECT id, medecin_id, patient_id, medications, notes,
			   created_at, updated_at, deleted_at
		FROM ordonnances
		WHERE id = $1
	`
	var o model.Ordonnance
	err := r.db.GetContext(ctx, &o, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ordonnance: %w", err)
	}
	return &o, nil
}

func (r *ordonnanceRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Ordonnance, error) {
	query := `
		SELECT id, medecin_id, patient_id, medications, notes,
			   created_at, updated_at, deleted_at
		FROM ordonnances
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var ordonnances []*model.Ordonnance
	err := r.db.SelectContext(ctx, &ordonnances, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ordonnances: %w", err)
	}
	return ordonnances, nil
}
