package ordonnance

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

type fakeOrdonnanceRepo struct {
	ordonnances map[uuid.UUID]*model.Ordonnance
}

func newFakeRepo() *fakeOrdonnanceRepo {
	return &fakeOrdonnanceRepo{ordonnances: make(map[uuid.UUID]*model.Ordonnance)}
}

func (r *fakeOrdonnanceRepo) Create(ctx context.Context, o *model.Ordonnance) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := *o
	r.ordonnances[o.ID] = &cp
	return nil
}

func (r *fakeOrdonnanceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Ordonnance, error) {
	o, ok := r.ordonnances[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrdonnanceRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Ordonnance, error) {
	var out []*model.Ordonnance
	for _, o := range r.ordonnances {
		if o.PatientID == patientID {
			cp := *o
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

func validRequest(patientID uuid.UUID) *model.CreateOrdonnanceRequest {
	return &model.CreateOrdonnanceRequest{
		PatientID: patientID.String(),
		Medications: []model.Medication{
			{Name: "Paracétamol", Dosage: "500mg", Frequency: "3x/jour", Duration: "5 jours"},
		},
	}
}

func TestCreateOrdonnance(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewService(newFakeRepo(), notifier)
	ctx := context.Background()

	medecin := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}
	patientID := uuid.New()

	o, err := svc.Create(ctx, medecin, validRequest(patientID))
	require.NoError(t, err)

	assert.Equal(t, medecin.ID, o.MedecinID)
	assert.Equal(t, patientID, o.PatientID)

	meds, err := o.Meds()
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Paracétamol", meds[0].Name)

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, patientID, notifier.notified[0])
}

func TestCreateOrdonnanceMedecinOnly(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})
	ctx := context.Background()
	patientID := uuid.New()

	// A patient cannot prescribe, not even for themselves.
	patient := model.ActorRef{ID: patientID, Role: model.RolePatient}
	_, err := svc.Create(ctx, patient, validRequest(patientID))
	assertErrorCode(t, err, errors.ErrForbidden)

	admin := model.ActorRef{ID: uuid.New(), Role: model.RoleAdmin}
	_, err = svc.Create(ctx, admin, validRequest(patientID))
	require.NoError(t, err)
}

func TestCreateOrdonnanceInvalidPatientID(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})
	medecin := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}

	_, err := svc.Create(context.Background(), medecin, &model.CreateOrdonnanceRequest{
		PatientID:   "not-a-uuid",
		Medications: []model.Medication{{Name: "Ibuprofène"}},
	})
	assertErrorCode(t, err, errors.ErrBadRequest)
}

func TestGetOrdonnanceNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})

	_, err := svc.Get(context.Background(), uuid.New())
	assertErrorCode(t, err, errors.ErrNotFound)
}

func TestListByPatient(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNotifier{})
	ctx := context.Background()
	medecin := model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin}
	patientID := uuid.New()

	_, err := svc.Create(ctx, medecin, validRequest(patientID))
	require.NoError(t, err)
	_, err = svc.Create(ctx, medecin, validRequest(uuid.New()))
	require.NoError(t, err)

	ordonnances, err := svc.ListByPatient(ctx, patientID)
	require.NoError(t, err)
	assert.Len(t, ordonnances, 1)
}
