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

func (r *conseilRepository) Create(ctx context.Context, c *model.Conseil) error {
	query := `
		INSERT INTO conseils (
			id, medecin_id, patient_id, titre, contenu, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.MedecinID,
		c.PatientID,
		c.Titre,
		c.Contenu,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create conseil: %w", err)
	}
	return nil
}

func (r *conseilRepository) Get(ctx context.Context, id uuid.UUID) (*model.Conseil, error) {
	query := `
		SELECT id, medecin_id, patient_id, titre, contenu,
			   created_at, updated_at, deleted_at
		FROM conseils
		WHERE id = $1
	`
	var c model.Conseil
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conseil: %w", err)
	}
	return &c, nil
}

func (r *conseilRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM conseils WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete conseil: %w", err)
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

func (r *conseilRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Conseil, error) {
	query := `
		SELECT id, medecin_id, patient_id, titre, contenu,
			   created_at, updated_at, deleted_at
		FROM conseils
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`
	var conseils []*model.Conseil
	err := r.db.SelectContext(ctx, &conseils, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conseils: %w", err)
	}
	return conseils, nil
}
