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

func (r *structureRepository) Create(ctx context.Context, s *model.Structure) error {
	query := `
		INSERT INTO structures (
			id, name, kind, address, phone, latitude, longitude,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Kind,
		s.Address,
		s.Phone,
		s.Latitude,
		s.Longitude,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create structure: %w", err)
	}
	return nil
}

func (r *structureRepository) Get(ctx context.Context, id uuid.UUID) (*model.Structure, error) {
	query := `
		SELECT id, name, kind, address, phone, latitude, longitude,
			   created_at, updated_at, deleted_at
		FROM structures
		WHERE id = $1
	`
	var s model.Structure
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get structure: %w", err)
	}
	return &s, nil
}

func (r *structureRepository) List(ctx context.Context, kind string) ([]*model.Structure, error) {
	query := `
		SELECT id, name, kind, address, phone, latitude, longitude,
			   created_at, updated_at, deleted_at
		FROM structures
		WHERE 1=1
	`
	args := []interface{}{}
	if kind != "" {
		query += " AND kind = $1"
		args = append(args, kind)
	}
	query += " ORDER BY name ASC"

	var structures []*model.Structure
	err := r.db.SelectContext(ctx, &structures, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list structures: %w", err)
	}
	return structures, nil
}

func (r *structureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM structures WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete structure: %w", err)
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
