package conseil

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	"github.com/telesante/telesante-api/internal/service/notification"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

type Service struct {
	repo     repository.ConseilRepository
	notifier notification.Service
}

func NewService(repo repository.ConseilRepository, notifier notification.Service) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, actor model.ActorRef, req *model.CreateConseilRequest) (*model.Conseil, error) {
	if actor.Role != model.RoleMedecin && actor.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("only medecins can publish conseils")
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid patient id", err)
	}

	c := &model.Conseil{
		MedecinID: actor.ID,
		PatientID: patientID,
		Titre:     req.Titre,
		Contenu:   req.Contenu,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.notifier.Notify(ctx, patientID, model.NotificationNewConseil,
		"Nouveau conseil", c.Titre); err != nil {
		log.Warn().Err(err).Msg("failed to record conseil notification")
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperrors.NotFound("conseil", err)
		}
		return apperrors.Internal(err)
	}

	if actor.Role != model.RoleAdmin && actor.ID != c.MedecinID {
		return apperrors.Forbidden("conseils can only be deleted by their author")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Conseil, error) {
	conseils, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return conseils, nil
}
