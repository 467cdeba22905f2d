package fiche

import (
	"context"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

// Service manages patient health records. A record is visible to its
// owner, to medecins, and to admins; only the owner or an admin may
// write it.
type Service struct {
	repo repository.FicheRepository
}

func NewService(repo repository.FicheRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, patientID uuid.UUID, actor model.ActorRef) (*model.FicheSante, error) {
	if actor.ID != patientID && actor.Role != model.RoleMedecin && actor.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("not allowed to read this health record")
	}

	f, err := s.repo.GetByPatient(ctx, patientID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("fiche de sante", err)
		}
		return nil, apperrors.Internal(err)
	}
	return f, nil
}

func (s *Service) Upsert(ctx context.Context, patientID uuid.UUID, req *model.UpsertFicheRequest, actor model.ActorRef) (*model.FicheSante, error) {
	if actor.ID != patientID && actor.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("not allowed to modify this health record")
	}

	f, err := s.repo.GetByPatient(ctx, patientID)
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.Internal(err)
	}
	if f == nil {
		f = &model.FicheSante{PatientID: patientID}
	}

	if req.BloodType != nil {
		f.BloodType = *req.BloodType
	}
	if req.Allergies != nil {
		f.Allergies = *req.Allergies
	}
	if req.ChronicConditions != nil {
		f.ChronicConditions = *req.ChronicConditions
	}

	if err := s.repo.Upsert(ctx, f); err != nil {
		return nil, apperrors.Internal(err)
	}
	return f, nil
}
