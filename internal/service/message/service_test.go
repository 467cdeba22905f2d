package message

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

type fakeMessageRepo struct {
	messages map[uuid.UUID]*model.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uuid.UUID]*model.Message)}
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *model.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	cp := *m
	r.messages[m.ID] = &cp
	return nil
}

func (r *fakeMessageRepo) Get(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMessageRepo) ListConversation(ctx context.Context, a, b uuid.UUID) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	m, ok := r.messages[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	m.ReadAt = &now
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error { return nil }
func (r *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (r *fakeUserRepo) Update(ctx context.Context, u *model.User) error { return nil }
func (r *fakeUserRepo) Archive(ctx context.Context, id uuid.UUID) error { return nil }
func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error  { return nil }
func (r *fakeUserRepo) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

type fakeNotifier struct {
	count int
}

func (n *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, notifType, title, content string) error {
	n.count++
	return nil
}
func (n *fakeNotifier) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	return nil, nil
}
func (n *fakeNotifier) MarkRead(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	return nil
}
func (n *fakeNotifier) Delete(ctx context.Context, id uuid.UUID, actor model.ActorRef) error {
	return nil
}

func setup() (*Service, *fakeNotifier, uuid.UUID, uuid.UUID) {
	alice := uuid.New()
	bob := uuid.New()

	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{
		alice: {Base: model.Base{ID: alice}, Role: model.RolePatient},
		bob:   {Base: model.Base{ID: bob}, Role: model.RoleMedecin},
	}}
	notifier := &fakeNotifier{}
	svc := NewService(newFakeMessageRepo(), users, notifier)
	return svc, notifier, alice, bob
}

func TestSendMessage(t *testing.T) {
	svc, notifier, alice, bob := setup()

	m, err := svc.Send(context.Background(), alice, &model.SendMessageRequest{
		ReceiverID: bob.String(),
		Content:    "Bonjour docteur",
	})
	require.NoError(t, err)

	assert.Equal(t, alice, m.SenderID)
	assert.Equal(t, bob, m.ReceiverID)
	assert.Nil(t, m.ReadAt)
	assert.Equal(t, 1, notifier.count)
}

func TestSendMessageToSelfRejected(t *testing.T) {
	svc, _, alice, _ := setup()

	_, err := svc.Send(context.Background(), alice, &model.SendMessageRequest{
		ReceiverID: alice.String(),
		Content:    "note a moi-meme",
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	svc, _, alice, _ := setup()

	_, err := svc.Send(context.Background(), alice, &model.SendMessageRequest{
		ReceiverID: uuid.New().String(),
		Content:    "bonjour",
	})

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestConversationIsSymmetric(t *testing.T) {
	svc, _, alice, bob := setup()
	ctx := context.Background()

	_, err := svc.Send(ctx, alice, &model.SendMessageRequest{ReceiverID: bob.String(), Content: "salut"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, bob, &model.SendMessageRequest{ReceiverID: alice.String(), Content: "bonjour"})
	require.NoError(t, err)

	fromAlice, err := svc.Conversation(ctx, alice, bob)
	require.NoError(t, err)
	fromBob, err := svc.Conversation(ctx, bob, alice)
	require.NoError(t, err)

	assert.Len(t, fromAlice, 2)
	assert.Len(t, fromBob, 2)
}

func TestMarkReadRecipientOnly(t *testing.T) {
	svc, _, alice, bob := setup()
	ctx := context.Background()

	m, err := svc.Send(ctx, alice, &model.SendMessageRequest{ReceiverID: bob.String(), Content: "salut"})
	require.NoError(t, err)

	// The sender cannot mark their own message read.
	err = svc.MarkRead(ctx, m.ID, model.ActorRef{ID: alice, Role: model.RolePatient})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	require.NoError(t, svc.MarkRead(ctx, m.ID, model.ActorRef{ID: bob, Role: model.RoleMedecin}))
}
