package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	"github.com/telesante/telesante-api/pkg/errors"
)

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*model.Notification
}

func newFakeRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*model.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	cp := *n
	r.notifications[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	n, ok := r.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.notifications[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.notifications, id)
	return nil
}

func assertErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func seed(t *testing.T, repo *fakeNotificationRepo, userID uuid.UUID) *model.Notification {
	t.Helper()
	n := &model.Notification{
		UserID:  userID,
		Type:    model.NotificationNewMessage,
		Title:   "Nouveau message",
		Content: "Vous avez reçu un message",
	}
	require.NoError(t, repo.Create(context.Background(), n))
	return n
}

func TestMarkReadRecipientOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil, nil, nil)
	ctx := context.Background()

	owner := uuid.New()
	n := seed(t, repo, owner)

	stranger := model.ActorRef{ID: uuid.New(), Role: model.RolePatient}
	err := svc.MarkRead(ctx, n.ID, stranger)
	assertErrorCode(t, err, errors.ErrForbidden)

	got, _ := repo.Get(ctx, n.ID)
	assert.False(t, got.Read, "a refused mark-read leaves the document untouched")

	require.NoError(t, svc.MarkRead(ctx, n.ID, model.ActorRef{ID: owner, Role: model.RolePatient}))
	got, _ = repo.Get(ctx, n.ID)
	assert.True(t, got.Read)
}

func TestDeleteRecipientOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil, nil, nil)
	ctx := context.Background()

	owner := uuid.New()
	n := seed(t, repo, owner)

	// Role does not matter here, only recipient identity does.
	admin := model.ActorRef{ID: uuid.New(), Role: model.RoleAdmin}
	err := svc.Delete(ctx, n.ID, admin)
	assertErrorCode(t, err, errors.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, n.ID, model.ActorRef{ID: owner, Role: model.RolePatient}))

	_, err = repo.Get(ctx, n.ID)
	assert.Equal(t, repository.ErrNotFound, err)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil, nil)

	err := svc.MarkRead(context.Background(), uuid.New(), model.ActorRef{ID: uuid.New(), Role: model.RolePatient})
	assertErrorCode(t, err, errors.ErrNotFound)
}

func TestListByUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil, nil, nil)
	ctx := context.Background()

	owner := uuid.New()
	seed(t, repo, owner)
	seed(t, repo, owner)
	seed(t, repo, uuid.New())

	notifications, err := svc.ListByUser(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)
}
