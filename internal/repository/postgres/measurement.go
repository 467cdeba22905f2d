package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
)

func (r *measurementRepository) Create(ctx context.Context, m *model.Measurement) error {
	query := `
		INSERT INTO measurements (
			id, patient_id, type, value, measured_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	m.ID = uuid.New()
	m.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.PatientID,
		m.Type,
		m.Value,
		m.MeasuredAt,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create measurement: %w", err)
	}
	return nil
}

func (r *measurementRepository) List(ctx context.Context, filters *model.MeasurementFilters) ([]*model.Measurement, error) {
	query := `
		SELECT id, patient_id, type, value, measured_at, created_at
		FROM measurements
		WHERE patient_id = $1
	`
	args := []interface{}{filters.PatientID}
	argCount := 2

	if filters.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argCount)
		args = append(args, filters.Type)
		argCount++
	}

	if filters.Order == model.SortAscending {
		query += " ORDER BY measured_at ASC"
	} else {
		query += " ORDER BY measured_at DESC"
	}

	var measurements []*model.Measurement
	err := r.db.SelectContext(ctx, &measurements, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return measurements, nil
}
