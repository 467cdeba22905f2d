package availability

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

// Service lets a doctor publish recurring weekly time windows.
// Windows are purely advisory: overlapping windows are accepted and
// nothing ties them to appointment bookings.
type Service struct {
	repo repository.AvailabilityRepository
}

func NewService(repo repository.AvailabilityRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, actor model.ActorRef, req *model.CreateAvailabilityRequest) (*model.Availability, error) {
	if actor.Role != model.RoleMedecin && actor.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("only medecins can publish availability slots")
	}

	day := strings.ToLower(req.Day)
	if err := validateWindow(day, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	slot := &model.Availability{
		MedecinID: actor.ID,
		Day:       day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, apperrors.Internal(err)
	}
	return slot, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAvailabilityRequest, actor model.ActorRef) (*model.Availability, error) {
	slot, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role != model.RoleAdmin && actor.ID != slot.MedecinID {
		return nil, apperrors.Forbidden("availability slots can only be edited by their owner")
	}

	if req.Day != nil {
		slot.Day = strings.ToLower(*req.Day)
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.Active != nil {
		slot.Active = *req.Active
	}

	if err := validateWindow(slot.Day, slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("availability", err)
		}
		return nil, apperrors.Internal(err)
	}
	return slot, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	slot, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if actor.Role != model.RoleAdmin && actor.ID != slot.MedecinID {
		return apperrors.Forbidden("availability slots can only be deleted by their owner")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.NotFound("availability", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ListByMedecin(ctx context.Context, medecinID uuid.UUID) ([]*model.Availability, error) {
	slots, err := s.repo.ListByMedecin(ctx, medecinID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return slots, nil
}

func (s *Service) get(ctx context.Context, id uuid.UUID) (*model.Availability, error) {
	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("availability", err)
		}
		return nil, apperrors.Internal(err)
	}
	return slot, nil
}

func validateWindow(day, start, end string) error {
	if !model.ValidWeekday(day) {
		return apperrors.BadRequest("day must be one of lundi..dimanche", nil)
	}
	if !model.ValidTimeOfDay(start) || !model.ValidTimeOfDay(end) {
		return apperrors.BadRequest("start_time and end_time must be formatted HH:MM", nil)
	}
	// HH:MM strings compare lexicographically.
	if start >= end {
		return apperrors.BadRequest("start_time must be before end_time", nil)
	}
	return nil
}
