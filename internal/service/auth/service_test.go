package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	"github.com/telesante/telesante-api/pkg/auth"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
	"github.com/telesante/telesante-api/pkg/security"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email && !u.Archived {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Archive(ctx context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Archived = true
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func newTestService() (*Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             "test-secret",
		RefreshSecret:      "test-refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
	svc := NewService(repo, jwtSvc, security.NewBcryptHasher(4), nil)
	return svc, repo
}

func registerReq() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:    "aminata@example.com",
		Password: "s3curepass",
		Name:     "Aminata Diallo",
		Role:     model.RolePatient,
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, "aminata@example.com", user.Email)
	assert.Equal(t, model.RolePatient, user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "s3curepass", user.PasswordHash, "password must not be stored in clear")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq())
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	req := registerReq()
	req.Password = "short"
	_, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "aminata@example.com",
		Password: "s3curepass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	require.NotNil(t, tokens.User)
	assert.Empty(t, tokens.User.PasswordHash, "hash must not leak in responses")

	claims, err := svc.ValidateToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID.String(), claims.UserID)
	assert.Equal(t, model.RolePatient, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, err = svc.Login(ctx, &model.LoginRequest{
		Email:    "aminata@example.com",
		Password: "wrongpass1",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever12",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "aminata@example.com",
		Password: "s3curepass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not acceptable as a refresh token.
	_, err = svc.Refresh(ctx, tokens.AccessToken)
	require.Error(t, err)
}

func TestRefreshArchivedAccountRejected(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "aminata@example.com",
		Password: "s3curepass",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Archive(ctx, user.ID))

	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
