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

func (r *alertRepository) Create(ctx context.Context, a *model.Alert) error {
	query := `
		INSERT INTO alerts (
			id, patient_id, message, latitude, longitude, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	a.ID = uuid.New()
	a.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.PatientID,
		a.Message,
		a.Latitude,
		a.Longitude,
		a.Status,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *alertRepository) Get(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	query := `
		SELECT id, patient_id, message, latitude, longitude, status,
			   closed_by, closed_at, created_at
		FROM alerts
		WHERE id = $1
	`
	var a model.Alert
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return &a, nil
}

func (r *alertRepository) ListOpen(ctx context.Context) ([]*model.Alert, error) {
	query := `
		SELECT id, patient_id, message, latitude, longitude, status,
			   closed_by, closed_at, created_at
		FROM alerts
		WHERE status = $1
		ORDER BY created_at DESC
	`
	var alerts []*model.Alert
	err := r.db.SelectContext(ctx, &alerts, query, model.AlertStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to list open alerts: %w", err)
	}
	return alerts, nil
}

func (r *alertRepository) Close(ctx context.Context, id, closedBy uuid.UUID) error {
	query := `
		UPDATE alerts
		SET status = $1, closed_by = $2, closed_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, model.AlertStatusClosed, closedBy, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to close alert: %w", err)
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
