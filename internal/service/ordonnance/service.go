package ordonnance

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	"github.com/telesante/telesante-api/internal/service/notification"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

type Service struct {
	repo     repository.OrdonnanceRepository
	notifier notification.Service
}

func NewService(repo repository.OrdonnanceRepository, notifier notification.Service) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, actor model.ActorRef, req *model.CreateOrdonnanceRequest) (*model.Ordonnance, error) {
	if actor.Role != model.RoleMedecin && actor.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("only medecins can issue ordonnances")
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient id", err)
	}

	meds, err := json.Marshal(req.Medications)
	if err != nil {
		return nil, apperrors.BadRequest("invalid medications list", err)
	}

	o := &model.Ordonnance{
		MedecinID:       actor.ID,
		PatientID:       patientID,
		MedicationsJSON: meds,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.notifier.Notify(ctx, patientID, model.NotificationNewOrdonnance,
		"Nouvelle ordonnance", "Une ordonnance a été ajoutée à votre dossier"); err != nil {
		log.Warn().Err(err).Msg("failed to record ordonnance notification")
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Ordonnance, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("ordonnance", err)
		}
		return nil, apperrors.Internal(err)
	}
	return o, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Ordonnance, error) {
	ordonnances, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return ordonnances, nil
}
