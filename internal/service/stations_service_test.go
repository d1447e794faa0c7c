package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voltmap/internal/filter"
	"voltmap/internal/geo"
	"voltmap/internal/models"
	"voltmap/internal/repository"
)

// fakeStationStore evaluates queries in memory with the same semantics the
// SQL layer implements, so service tests double as a parity check between
// the two filter evaluation sites.
type fakeStationStore struct {
	stations []models.Station
}

func (f *fakeStationStore) FindAll(_ context.Context) ([]models.Station, error) {
	return f.stations, nil
}

func (f *fakeStationStore) FindByID(_ context.Context, id string) (*models.Station, error) {
	for i := range f.stations {
		if f.stations[i].ID == id {
			return &f.stations[i], nil
		}
	}
	return nil, repository.ErrStationNotFound
}

func (f *fakeStationStore) SearchByName(_ context.Context, name string, limit int) ([]models.Station, error) {
	var out []models.Station
	for _, s := range f.stations {
		if strings.Contains(strings.ToLower(s.Name()), strings.ToLower(name)) {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStationStore) Filter(_ context.Context, c filter.Criteria) ([]models.Station, error) {
	return c.Apply(f.stations), nil
}

func str(s string) *string     { return &s }
func flag(b bool) *bool        { return &b }
func power(f float64) *float64 { return &f }

func fixture() []models.Station {
	return []models.Station{
		{
			ID:                "FR*S1*P1",
			NomStation:        str("Aire de Beaune"),
			PuissanceNominale: power(50),
			PriseTypeComboCCS: flag(true),
			Coordonnees:       &models.Coordinates{Longitude: 4.84, Latitude: 47.02},
		},
		{
			ID:                "FR*S2*P1",
			NomStation:        str("Parking Beaulieu"),
			PuissanceNominale: power(22),
			PriseType2:        flag(true),
			Coordonnees:       &models.Coordinates{Longitude: 4.85, Latitude: 47.03},
		},
	}
}

func newStationsService(stations []models.Station) *StationsService {
	index := geo.NewIndex()
	index.Rebuild(stations)
	return NewStationsService(&fakeStationStore{stations: stations}, index, nil, 10, zap.NewNop())
}

func TestListAndGet(t *testing.T) {
	svc := newStationsService(fixture())

	stations, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 2)

	station, err := svc.Get(context.Background(), "FR*S2*P1")
	require.NoError(t, err)
	assert.Equal(t, "Parking Beaulieu", station.Name())

	_, err = svc.Get(context.Background(), "FR*GHOST*1")
	assert.ErrorIs(t, err, repository.ErrStationNotFound)
}

func TestSearch(t *testing.T) {
	svc := newStationsService(fixture())

	stations, err := svc.Search(context.Background(), "beau")
	require.NoError(t, err)
	assert.Len(t, stations, 2)

	stations, err = svc.Search(context.Background(), "beaulieu")
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "FR*S2*P1", stations[0].ID)
}

func TestFilterFixture(t *testing.T) {
	svc := newStationsService(fixture())

	byPower, err := svc.Filter(context.Background(), filter.Criteria{MinPower: 30})
	require.NoError(t, err)
	require.Len(t, byPower, 1)
	assert.Equal(t, "FR*S1*P1", byPower[0].ID)

	byConnector, err := svc.Filter(context.Background(), filter.Criteria{ConnectorType: filter.ConnectorType2})
	require.NoError(t, err)
	require.Len(t, byConnector, 1)
	assert.Equal(t, "FR*S2*P1", byConnector[0].ID)
}

func TestNearbyNearestFirst(t *testing.T) {
	svc := newStationsService(fixture())

	stations, err := svc.Nearby(context.Background(), 4.84, 47.02, 10000)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "FR*S1*P1", stations[0].ID)
	assert.Equal(t, "FR*S2*P1", stations[1].ID)

	stations, err = svc.Nearby(context.Background(), 4.84, 47.02, 100)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "FR*S1*P1", stations[0].ID)
}
