package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"voltmap/internal/models"
)

// StationStore caches single-station lookups. The TTL bounds staleness
// across dataset reimports; a miss or any redis failure falls back to the
// database.
type StationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStationStore returns redis-backed cache.
func NewStationStore(client *redis.Client, ttl time.Duration) *StationStore {
	return &StationStore{client: client, ttl: ttl}
}

func (s *StationStore) key(id string) string {
	return fmt.Sprintf("stations:byid:%s", id)
}

// Save caches the station.
func (s *StationStore) Save(ctx context.Context, station *models.Station) error {
	data, err := json.Marshal(station)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(station.ID), data, s.ttl).Err()
}

// Get returns the cached station; redis.Nil means a miss.
func (s *StationStore) Get(ctx context.Context, id string) (*models.Station, error) {
	result, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		return nil, err
	}
	var station models.Station
	if err := json.Unmarshal([]byte(result), &station); err != nil {
		return nil, err
	}
	return &station, nil
}
