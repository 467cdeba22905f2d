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

func (r *ficheRepository) GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.FicheSante, error) {
	query := `
		SELECT id, patient_id, blood_type, allergies, chronic_conditions, updated_at
		FROM fiches_sante
		WHERE patient_id = $1
	`
	var f model.FicheSante
	err := r.db.GetContext(ctx, &f, query, patientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fiche: %w", err)
	}
	return &f, nil
}

func (r *ficheRepository) Upsert(ctx context.Context, f *model.FicheSante) error {
	query := `
		INSERT INTO fiches_sante (
			id, patient_id, blood_type, allergies, chronic_conditions, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (patient_id) DO UPDATE
		SET blood_type = EXCLUDED.blood_type,
			allergies = EXCLUDED.allergies,
			chronic_conditions = EXCLUDED.chronic_conditions,
			updated_at = EXCLUDED.updated_at
	`
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.PatientID,
		f.BloodType,
		f.Allergies,
		f.ChronicConditions,
		f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fiche: %w", err)
	}
	return nil
}
