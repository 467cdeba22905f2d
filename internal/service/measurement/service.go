package measurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

// Service manages append-only health measurements. Records are never
// mutated after creation, only filtered and sorted at read time.
type Service struct {
	repo repository.MeasurementRepository
}

func NewService(repo repository.MeasurementRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, patientID uuid.UUID, req *model.CreateMeasurementRequest) (*model.Measurement, error) {
	if !req.Type.IsValid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unrecognized measurement type %q", req.Type), nil)
	}

	measuredAt := time.Now()
	if req.MeasuredAt != nil {
		measuredAt = *req.MeasuredAt
	}

	m := &model.Measurement{
		PatientID:  patientID,
		Type:       req.Type,
		Value:      req.Value,
		MeasuredAt: measuredAt,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apperrors.Internal(err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, filters *model.MeasurementFilters) ([]*model.Measurement, error) {
	if filters.Type != "" && !filters.Type.IsValid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unrecognized measurement type %q", filters.Type), nil)
	}

	measurements, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return measurements, nil
}
