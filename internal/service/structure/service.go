package structure

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
	apperrors "github.com/telesante/telesante-api/pkg/errors"
)

const (
	defaultRadiusKm = 10.0
	earthRadiusKm   = 6371.0

	listCacheTTL = 5 * time.Minute
)

// Service manages the healthcare structure directory. The structure list
// changes rarely, so reads go through a short-lived in-memory cache and
// the proximity computation runs against the cached slices.
type Service struct {
	repo  repository.StructureRepository
	cache *cache.Cache
}

func NewService(repo repository.StructureRepository) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(listCacheTTL, 10*time.Minute),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateStructureRequest) (*model.Structure, error) {
	st := &model.Structure{
		Name:      req.Name,
		Kind:      req.Kind,
		Address:   req.Address,
		Phone:     req.Phone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Flush()
	return st, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Structure, error) {
	st, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("structure", err)
		}
		return nil, apperrors.Internal(err)
	}
	return st, nil
}

func (s *Service) List(ctx context.Context, kind string) ([]*model.Structure, error) {
	if kind != "" && !validKind(kind) {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown structure kind: %s", kind), nil)
	}

	key := "structures:" + kind
	if cached, found := s.cache.Get(key); found {
		return cached.([]*model.Structure), nil
	}

	structures, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.cache.Set(key, structures, cache.DefaultExpiration)
	return structures, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.NotFound("structure", err)
		}
		return apperrors.Internal(err)
	}
	s.cache.Flush()
	return nil
}

// Nearby returns the structures within the query radius of the given
// point, sorted by ascending distance.
func (s *Service) Nearby(ctx context.Context, q *model.NearbyQuery) ([]*model.NearbyStructure, error) {
	if q.Latitude < -90 || q.Latitude > 90 || q.Longitude < -180 || q.Longitude > 180 {
		return nil, apperrors.BadRequest("coordinates out of range", nil)
	}

	radius := q.RadiusKm
	if radius <= 0 {
		radius = defaultRadiusKm
	}

	structures, err := s.List(ctx, q.Kind)
	if err != nil {
		return nil, err
	}

	results := make([]*model.NearbyStructure, 0, len(structures))
	for _, st := range structures {
		d := haversineKm(q.Latitude, q.Longitude, st.Latitude, st.Longitude)
		if d > radius {
			continue
		}
		results = append(results, &model.NearbyStructure{
			Structure:  *st,
			DistanceKm: math.Round(d*100) / 100,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	return results, nil
}

// haversineKm computes the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func validKind(kind string) bool {
	switch kind {
	case model.StructureHopital, model.StructurePharmacie, model.StructurePoste:
		return true
	}
	return false
}
