package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telesante/telesante-api/internal/email"
	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
	"github.com/telesante/telesante-api/pkg/metrics"
)

// Types of notification that also fan out over email.
var emailTypes = map[string]bool{
	model.NotificationAppointmentConfirmed: true,
	model.NotificationAlert:                true,
}

// Service records notification documents for domain events. Writes are
// fire-and-forget from the caller's perspective: a failed notification
// never rolls back the action that triggered it.
type Service interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType, title, content string) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, actor model.ActorRef) error
	Delete(ctx context.Context, id uuid.UUID, actor model.ActorRef) error
}

type service struct {
	repo     repository.NotificationRepository
	outbox   repository.OutboxRepository
	userRepo repository.UserRepository
	emailSvc email.Service
	metrics  *metrics.Metrics
}

func NewService(repo repository.NotificationRepository, outbox repository.OutboxRepository,
	userRepo repository.UserRepository, emailSvc email.Service, m *metrics.Metrics) Service {
	return &service{
		repo:     repo,
		outbox:   outbox,
		userRepo: userRepo,
		emailSvc: emailSvc,
		metrics:  m,
	}
}

func (s *service) Notify(ctx context.Context, userID uuid.UUID, notifType, title, content string) error {
	n := &model.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Content: content,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.metrics.NotificationsFailed.WithLabelValues(notifType).Inc()
		return fmt.Errorf("failed to create notification: %w", err)
	}
	s.metrics.NotificationsCreated.WithLabelValues(notifType).Inc()

	// The outbox write is best-effort: the in-app document above is the
	// source of truth for polling clients.
	payload, err := json.Marshal(map[string]interface{}{
		"notification_id": n.ID,
		"user_id":         userID,
		"type":            notifType,
		"title":           title,
		"created_at":      time.Now(),
	})
	if err == nil {
		if err := s.outbox.Create(ctx, &model.OutboxEvent{
			EventType: notifType,
			Payload:   payload,
		}); err != nil {
			log.Warn().Err(err).Str("type", notifType).Msg("failed to enqueue outbox event")
		}
	}

	if s.emailSvc != nil && emailTypes[notifType] {
		go s.sendEmail(userID, title, content)
	}

	return nil
}

func (s *service) sendEmail(userID uuid.UUID, subject, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to resolve notification recipient")
		return
	}

	if err := s.emailSvc.SendCustom(ctx, user.Email, subject, content); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to send notification email")
	}
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	if _, err := s.getOwned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	if _, err := s.getOwned(ctx, id, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Notifications are personal: only the recipient may read or discard them.
func (s *service) getOwned(ctx context.Context, id uuid.UUID, actor model.ActorRef) (*model.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("notification", err)
		}
		return nil, apperrors.Internal(err)
	}
	if n.UserID != actor.ID {
		return nil, apperrors.Forbidden("notifications can only be managed by their recipient")
	}
	return n, nil
}
