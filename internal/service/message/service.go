package message

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
	repo     repository.MessageRepository
	userRepo repository.UserRepository
	notifier notification.Service
}

func NewService(repo repository.MessageRepository, userRepo repository.UserRepository,
	notifier notification.Service) *Service {
	return &Service{repo: repo, userRepo: userRepo, notifier: notifier}
}

func (s *Service) Send(ctx context.Context, senderID uuid.UUID, req *model.SendMessageRequest) (*model.Message, error) {
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid receiver id", err)
	}
	if receiverID == senderID {
		return nil, apperrors.BadRequest("cannot message yourself", nil)
	}

	if _, err := s.userRepo.Get(ctx, receiverID); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("receiver", err)
		}
		return nil, apperrors.Internal(err)
	}

	m := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.notifier.Notify(ctx, receiverID, model.NotificationNewMessage,
		"Nouveau message", "Vous avez reçu un nouveau message"); err != nil {
		log.Warn().Err(err).Msg("failed to record message notification")
	}

	return m, nil
}

func (s *Service) Conversation(ctx context.Context, userID, otherID uuid.UUID) ([]*model.Message, error) {
	messages, err := s.repo.ListConversation(ctx, userID, otherID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return messages, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperrors.NotFound("message", err)
		}
		return apperrors.Internal(err)
	}

	// Only the recipient marks a message read.
	if actor.ID != m.ReceiverID {
		return apperrors.Forbidden("only the recipient can mark a message read")
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
