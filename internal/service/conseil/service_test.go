package conseil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	"github.com/telesante/telesante-api/pkg/errors"
)

type fakeConseilRepo struct {
	conseils map[uuid.UUID]*model.Conseil
}

func newFakeRepo() *fakeConseilRepo {
	return &fakeConseilRepo{conseils: make(map[uuid.UUID]*model.Conseil)}
}

func (r *fakeConseilRepo) Create(ctx context.Context, c *model.Conseil) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.conseils[c.ID] = &cp
	return nil
}

func (r *fakeConseilRepo) Get(ctx context.Context, id uuid.UUID) (*model.Conseil, error) {
	c, ok := r.conseils[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConseilRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.conseils[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.conseils, id)
	return nil
}

func (r *fakeConseilRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Conseil, error) {
	var out []*model.Conseil
	for _, c := range r.conseils {
		if c.PatientID == patientID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	notified []uuid.UUID
}

func (n *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, notifType, title, content string) error {
	n.notified = append(n.notified, userID)
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

func assertErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateConseil(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewService(newFakeRepo(), notifier)
	ctx := context.Background()

	medecin := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}
	patientID := uuid.New()

	c, err := svc.Create(ctx, medecin, &model.CreateConseilRequest{
		PatientID: patientID.String(),
		Titre:     "Hydratation",
		Contenu:   "Boire au moins 1,5L d'eau par jour",
	})
	require.NoError(t, err)

	assert.Equal(t, medecin.ID, c.MedecinID)
	assert.Equal(t, patientID, c.PatientID)

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, patientID, notifier.notified[0])
}

func TestCreateConseilMedecinOnly(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})
	ctx := context.Background()

	req := model.CreateConseilRequest{
		PatientID: uuid.New().String(),
		Titre:     "Sommeil",
		Contenu:   "Dormir huit heures",
	}

	patient := model.ActorRef{ID: uuid.New(), Role: model.RolePatient}
	_, err := svc.Create(ctx, patient, &req)
	assertErrorCode(t, err, errors.ErrForbidden)

	admin := model.ActorRef{ID: uuid.New(), Role: model.RoleAdmin}
	_, err = svc.Create(ctx, admin, &req)
	require.NoError(t, err)
}

func TestDeleteConseilAuthorOnly(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})
	ctx := context.Background()

	author := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}
	c, err := svc.Create(ctx, author, &model.CreateConseilRequest{
		PatientID: uuid.New().String(),
		Titre:     "Activité physique",
		Contenu:   "Trente minutes de marche par jour",
	})
	require.NoError(t, err)

	otherMedecin := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}
	err = svc.Delete(ctx, c.ID, otherMedecin)
	assertErrorCode(t, err, errors.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, c.ID, author))

	err = svc.Delete(ctx, c.ID, author)
	assertErrorCode(t, err, errors.ErrNotFound)
}

func TestDeleteConseilAdminOverride(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})
	ctx := context.Background()

	author := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}
	c, err := svc.Create(ctx, author, &model.CreateConseilRequest{
		PatientID: uuid.New().String(),
		Titre:     "Tabac",
		Contenu:   "Arrêter de fumer",
	})
	require.NoError(t, err)

	admin := model.ActorRef{ID: uuid.New(), Role: model.RoleAdmin}
	require.NoError(t, svc.Delete(ctx, c.ID, admin))
}

func TestListByPatient(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})
	ctx := context.Background()
	medecin := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}
	patientID := uuid.New()

	for _, titre := range []string{"Repas", "Repos"} {
		_, err := svc.Create(ctx, medecin, &model.CreateConseilRequest{
			PatientID: patientID.String(),
			Titre:     titre,
			Contenu:   "Contenu du conseil",
		})
		require.NoError(t, err)
	}

	conseils, err := svc.ListByPatient(ctx, patientID)
	require.NoError(t, err)
	assert.Len(t, conseils, 2)
}
