package structure

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

type fakeStructureRepo struct {
	structures map[uuid.UUID]*model.Structure
	listCalls  int
}

func newFakeRepo() *fakeStructureRepo {
	return &fakeStructureRepo{structures: make(map[uuid.UUID]*model.Structure)}
}

func (r *fakeStructureRepo) Create(ctx context.Context, s *model.Structure) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.structures[s.ID] = &cp
	return nil
}

func (r *fakeStructureRepo) Get(ctx context.Context, id uuid.UUID) (*model.Structure, error) {
	s, ok := r.structures[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStructureRepo) List(ctx context.Context, kind string) ([]*model.Structure, error) {
	r.listCalls++
	var out []*model.Structure
	for _, s := range r.structures {
		if kind != "" && s.Kind != kind {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStructureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.structures[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.structures, id)
	return nil
}

// Dakar city center and points at known distances from it.
const (
	dakarLat = 14.6928
	dakarLng = -17.4467
)

func seed(t *testing.T, svc *Service) map[string]*model.Structure {
	t.Helper()
	ctx := context.Background()
	out := make(map[string]*model.Structure)

	specs := []model.CreateStructureRequest{
		{Name: "Hopital Principal", Kind: model.StructureHopital, Latitude: 14.6650, Longitude: -17.4350},
		{Name: "Pharmacie Plateau", Kind: model.StructurePharmacie, Latitude: 14.6700, Longitude: -17.4380},
		{Name: "Poste de Rufisque", Kind: model.StructurePoste, Latitude: 14.7167, Longitude: -17.2667},
	}
	for i := range specs {
		s, err := svc.Create(ctx, &specs[i])
		require.NoError(t, err)
		out[s.Name] = s
	}
	return out
}

func TestHaversineKnownDistance(t *testing.T) {
	// Paris to Marseille is roughly 660 km.
	d := haversineKm(48.8566, 2.3522, 43.2965, 5.3698)
	assert.InDelta(t, 660, d, 5)

	// Zero distance for identical points.
	assert.InDelta(t, 0, haversineKm(dakarLat, dakarLng, dakarLat, dakarLng), 1e-9)
}

func TestNearbySortsByDistance(t *testing.T) {
	svc := NewService(newFakeRepo())
	seed(t, svc)

	results, err := svc.Nearby(context.Background(), &model.NearbyQuery{
		Latitude:  dakarLat,
		Longitude: dakarLng,
		RadiusKm:  50,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].DistanceKm, results[i].DistanceKm)
	}
	assert.Equal(t, "Pharmacie Plateau", results[0].Name)
}

func TestNearbyRespectsRadius(t *testing.T) {
	svc := NewService(newFakeRepo())
	seed(t, svc)

	// Default 10 km radius excludes Rufisque (roughly 20 km out).
	results, err := svc.Nearby(context.Background(), &model.NearbyQuery{
		Latitude:  dakarLat,
		Longitude: dakarLng,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.LessOrEqual(t, r.DistanceKm, 10.0)
	}
}

func TestNearbyFiltersByKind(t *testing.T) {
	svc := NewService(newFakeRepo())
	seed(t, svc)

	results, err := svc.Nearby(context.Background(), &model.NearbyQuery{
		Latitude:  dakarLat,
		Longitude: dakarLng,
		RadiusKm:  50,
		Kind:      model.StructureHopital,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Hopital Principal", results[0].Name)
}

func TestNearbyRejectsBadCoordinates(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Nearby(context.Background(), &model.NearbyQuery{Latitude: 91, Longitude: 0})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

func TestListRejectsUnknownKind(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.List(context.Background(), "clinique")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

func TestListUsesCache(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	seed(t, svc)
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	require.NoError(t, err)
	calls := repo.listCalls

	_, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, calls, repo.listCalls, "second list should hit the cache")

	// A write invalidates the cache.
	_, err = svc.Create(ctx, &model.CreateStructureRequest{
		Name: "Nouvelle Pharmacie", Kind: model.StructurePharmacie,
		Latitude: dakarLat, Longitude: dakarLng,
	})
	require.NoError(t, err)

	_, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, calls+1, repo.listCalls)
}

func TestDeleteStructure(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	structures := seed(t, svc)
	ctx := context.Background()

	id := structures["Hopital Principal"].ID
	require.NoError(t, svc.Delete(ctx, id))

	err := svc.Delete(ctx, id)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
