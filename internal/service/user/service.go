package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal(err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest, actor model.ActorRef) (*model.User, error) {
	if actor.Role != model.RoleAdmin && actor.ID != id {
		return nil, apperrors.Forbidden("profiles can only be edited by their owner")
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Speciality != nil {
		user.Speciality = req.Speciality
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal(err)
	}
	user.PasswordHash = ""
	return user, nil
}

// Archive soft-deletes an account. Archived users stay referenced by
// existing appointments and records.
func (s *Service) Archive(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	if actor.Role != model.RoleAdmin && actor.ID != id {
		return apperrors.Forbidden("accounts can only be archived by their owner")
	}

	if err := s.repo.Archive(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.NotFound("user", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

// Delete removes an account permanently. Admin-only.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	if actor.Role != model.RoleAdmin {
		return apperrors.Forbidden("only administrators can delete accounts")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.NotFound("user", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	users, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}
