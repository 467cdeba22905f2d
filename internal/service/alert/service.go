package alert

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	"github.com/telesante/telesante-api/internal/service/notification"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

// Service handles patient emergency alerts. Raising an alert fans a
// notification out to every active doctor on the platform.
type Service struct {
	repo     repository.AlertRepository
	userRepo repository.UserRepository
	notifier notification.Service
}

func NewService(repo repository.AlertRepository, userRepo repository.UserRepository,
	notifier notification.Service) *Service {
	return &Service{repo: repo, userRepo: userRepo, notifier: notifier}
}

func (s *Service) Raise(ctx context.Context, patientID uuid.UUID, req *model.RaiseAlertRequest) (*model.Alert, error) {
	a := &model.Alert{
		PatientID: patientID,
		Message:   req.Message,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    model.AlertStatusOpen,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperrors.Internal(err)
	}

	go s.notifyMedecins(a)

	return a, nil
}

func (s *Service) notifyMedecins(a *model.Alert) {
	ctx := context.Background()

	archived := false
	medecins, err := s.userRepo.List(ctx, &model.UserFilters{
		Role:     model.RoleMedecin,
		Archived: &archived,
	})
	if err != nil {
		log.Error().Err(err).Str("alert_id", a.ID.String()).Msg("failed to list medecins for alert fan-out")
		return
	}

	for _, m := range medecins {
		if err := s.notifier.Notify(ctx, m.ID, model.NotificationAlert,
			"Alerte d'urgence", a.Message); err != nil {
			log.Warn().Err(err).
				Str("alert_id", a.ID.String()).
				Str("medecin_id", m.ID.String()).
				Msg("failed to record alert notification")
		}
	}
}

func (s *Service) ListOpen(ctx context.Context) ([]*model.Alert, error) {
	alerts, err := s.repo.ListOpen(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return alerts, nil
}

func (s *Service) Close(ctx context.Context, id uuid.UUID, actor model.ActorRef) (*model.Alert, error) {
	if actor.Role != model.RoleMedecin && actor.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("only medecins can close alerts")
	}

	if err := s.repo.Close(ctx, id, actor.ID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("alert", err)
		}
		return nil, apperrors.Internal(err)
	}

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return a, nil
}
