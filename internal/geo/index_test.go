package geo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltmap/internal/models"
)

func station(id string, lon, lat float64) models.Station {
	return models.Station{
		ID:          id,
		Coordonnees: &models.Coordinates{Longitude: lon, Latitude: lat},
	}
}

func TestRebuildSkipsStationsWithoutCoordinates(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]models.Station{
		station("a", 2.35, 48.85),
		{ID: "no-coords"},
	})
	assert.Equal(t, 1, idx.Len())
}

func TestNearbyOrderedByDistance(t *testing.T) {
	idx := NewIndex()
	// Points along the Paris meridian, roughly 1.1km per 0.01 deg latitude.
	idx.Rebuild([]models.Station{
		station("far", 2.35, 48.95),
		station("near", 2.35, 48.86),
		station("center", 2.35, 48.85),
		station("mid", 2.35, 48.89),
	})

	results := idx.Nearby(2.35, 48.85, 50000)
	require.Len(t, results, 4)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Station.ID
	}
	assert.Equal(t, []string{"center", "near", "mid", "far"}, ids)

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
}

func TestNearbyRespectsRadius(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]models.Station{
		station("close", 2.35, 48.851),  // ~111m north
		station("distant", 2.35, 48.95), // ~11km north
	})

	results := idx.Nearby(2.35, 48.85, 5000)
	require.Len(t, results, 1)
	assert.Equal(t, "close", results[0].Station.ID)
	assert.InDelta(t, 111, results[0].Distance, 5)
}

func TestZeroRadiusReturnsExactPointOnly(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]models.Station{
		station("exact", 2.35, 48.85),
		station("offset", 2.3501, 48.85),
	})

	results := idx.Nearby(2.35, 48.85, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "exact", results[0].Station.ID)
	assert.Zero(t, results[0].Distance)
}

func TestRebuildReplacesPreviousIndex(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]models.Station{station("old", 2.35, 48.85)})
	idx.Rebuild([]models.Station{station("new", 2.35, 48.85)})

	results := idx.Nearby(2.35, 48.85, 1000)
	require.Len(t, results, 1)
	assert.Equal(t, "new", results[0].Station.ID)
}

func TestNearbyOnLargeSet(t *testing.T) {
	idx := NewIndex()
	var stations []models.Station
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			stations = append(stations, station(
				fmt.Sprintf("grid-%d-%d", i, j),
				2.0+float64(i)*0.01,
				48.0+float64(j)*0.01,
			))
		}
	}
	idx.Rebuild(stations)
	assert.Equal(t, 400, idx.Len())

	results := idx.Nearby(2.1, 48.1, 3000)
	require.NotEmpty(t, results)
	assert.Equal(t, "grid-10-10", results[0].Station.ID)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
	for _, r := range results {
		assert.LessOrEqual(t, r.Distance, 3000.0)
	}
}
