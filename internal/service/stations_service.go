package service

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voltmap/internal/filter"
	"voltmap/internal/geo"
	"voltmap/internal/models"
	redisstore "voltmap/internal/redis"
)

// StationStore is what StationsService needs from the repository.
type StationStore interface {
	FindAll(ctx context.Context) ([]models.Station, error)
	FindByID(ctx context.Context, id string) (*models.Station, error)
	SearchByName(ctx context.Context, name string, limit int) ([]models.Station, error)
	Filter(ctx context.Context, c filter.Criteria) ([]models.Station, error)
}

// StationsService ties the station repository, the geo index and the
// optional redis cache together.
type StationsService struct {
	repo        StationStore
	index       *geo.Index
	cache       *redisstore.StationStore
	searchLimit int
	logger      *zap.Logger
}

// NewStationsService builds service. cache may be nil.
func NewStationsService(
	repo StationStore,
	index *geo.Index,
	cache *redisstore.StationStore,
	searchLimit int,
	logger *zap.Logger,
) *StationsService {
	if searchLimit <= 0 {
		searchLimit = 10
	}
	return &StationsService{
		repo:        repo,
		index:       index,
		cache:       cache,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

// List returns every station.
func (s *StationsService) List(ctx context.Context) ([]models.Station, error) {
	return s.repo.FindAll(ctx)
}

// Get returns one station, read-through the cache when one is configured.
func (s *StationsService) Get(ctx context.Context, id string) (*models.Station, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("station cache read failed", zap.Error(err))
		}
	}

	station, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, station); err != nil {
			s.logger.Warn("station cache write failed", zap.Error(err))
		}
	}
	return station, nil
}

// Search matches the query as a case-insensitive substring of the station
// name, capped at the configured limit.
func (s *StationsService) Search(ctx context.Context, query string) ([]models.Station, error) {
	return s.repo.SearchByName(ctx, query, s.searchLimit)
}

// Nearby returns stations within maxDistanceMeters of the point, ordered
// nearest first by the geo index.
func (s *StationsService) Nearby(ctx context.Context, longitude, latitude, maxDistanceMeters float64) ([]models.Station, error) {
	results := s.index.Nearby(longitude, latitude, maxDistanceMeters)
	stations := make([]models.Station, 0, len(results))
	for _, r := range results {
		stations = append(stations, *r.Station)
	}
	return stations, nil
}

// Filter returns stations matching the conjunction of the criteria.
func (s *StationsService) Filter(ctx context.Context, c filter.Criteria) ([]models.Station, error) {
	return s.repo.Filter(ctx, c)
}
