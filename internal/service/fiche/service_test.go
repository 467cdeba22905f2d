package fiche

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

type fakeFicheRepo struct {
	fiches map[uuid.UUID]*model.FicheSante
}

func newFakeRepo() *fakeFicheRepo {
	return &fakeFicheRepo{fiches: make(map[uuid.UUID]*model.FicheSante)}
}

func (r *fakeFicheRepo) GetByPatient(ctx context.Context, patientID uuid.UUID) (*model.FicheSante, error) {
	f, ok := r.fiches[patientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFicheRepo) Upsert(ctx context.Context, f *model.FicheSante) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	cp := *f
	r.fiches[f.PatientID] = &cp
	return nil
}

func strptr(s string) *string { return &s }

func TestUpsertCreatesLazily(t *testing.T) {
	svc := NewService(newFakeRepo())
	patientID := uuid.New()
	owner := model.ActorRef{ID: patientID, Role: model.RolePatient}

	f, err := svc.Upsert(context.Background(), patientID, &model.UpsertFicheRequest{
		BloodType: strptr("O+"),
		Allergies: strptr("arachides"),
	}, owner)
	require.NoError(t, err)

	assert.Equal(t, patientID, f.PatientID)
	assert.Equal(t, "O+", f.BloodType)
	assert.Equal(t, "arachides", f.Allergies)
}

func TestUpsertMergesSubset(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	patientID := uuid.New()
	owner := model.ActorRef{ID: patientID, Role: model.RolePatient}

	_, err := svc.Upsert(ctx, patientID, &model.UpsertFicheRequest{
		BloodType: strptr("AB-"),
		Allergies: strptr("pollen"),
	}, owner)
	require.NoError(t, err)

	f, err := svc.Upsert(ctx, patientID, &model.UpsertFicheRequest{
		ChronicConditions: strptr("asthme"),
	}, owner)
	require.NoError(t, err)

	// Untouched fields survive a partial update.
	assert.Equal(t, "AB-", f.BloodType)
	assert.Equal(t, "pollen", f.Allergies)
	assert.Equal(t, "asthme", f.ChronicConditions)
}

func TestGetAccessControl(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	patientID := uuid.New()
	owner := model.ActorRef{ID: patientID, Role: model.RolePatient}

	_, err := svc.Upsert(ctx, patientID, &model.UpsertFicheRequest{BloodType: strptr("A+")}, owner)
	require.NoError(t, err)

	// Owner, any medecin and admins may read.
	for _, actor := range []model.ActorRef{
		owner,
		{ID: uuid.New(), Role: model.RoleMedecin},
		{ID: uuid.New(), Role: model.RoleAdmin},
	} {
		_, err := svc.Get(ctx, patientID, actor)
		assert.NoError(t, err)
	}

	// Another patient may not.
	_, err = svc.Get(ctx, patientID, model.ActorRef{ID: uuid.New(), Role: model.RolePatient})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestUpsertOwnerOrAdminOnly(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()
	patientID := uuid.New()

	// A medecin cannot write the record.
	_, err := svc.Upsert(ctx, patientID, &model.UpsertFicheRequest{BloodType: strptr("B+")},
		model.ActorRef{ID: uuid.New(), Role: model.RoleMedecin})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)

	// An admin can.
	_, err = svc.Upsert(ctx, patientID, &model.UpsertFicheRequest{BloodType: strptr("B+")},
		model.ActorRef{ID: uuid.New(), Role: model.RoleAdmin})
	assert.NoError(t, err)
}

func TestGetUnknownFiche(t *testing.T) {
	svc := NewService(newFakeRepo())
	patientID := uuid.New()

	_, err := svc.Get(context.Background(), patientID, model.ActorRef{ID: patientID, Role: model.RolePatient})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
