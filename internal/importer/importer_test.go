package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voltmap/internal/geo"
	"voltmap/internal/models"
)

type fakeStore struct {
	stations   []models.Station
	replaceErr error
	replaced   int
}

func (f *fakeStore) ReplaceAll(_ context.Context, stations []models.Station) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.stations = stations
	f.replaced++
	return nil
}

func (f *fakeStore) FindAll(_ context.Context) ([]models.Station, error) {
	return f.stations, nil
}

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stations.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const dataset = `[
	{"id_pdc_itinerance": "FR*S1*P1", "nom_station": "Aire de Beaune", "coordonneesXY": [4.84, 47.02], "date_maj": "2024-01-10"},
	{"id_pdc_itinerance": "FR*S2*P1", "nom_station": "Parking Centre"}
]`

func TestImportReplacesStationsAndRebuildsIndex(t *testing.T) {
	store := &fakeStore{}
	index := geo.NewIndex()

	New(store, index, writeDataset(t, dataset), zap.NewNop()).Run(context.Background())

	assert.Equal(t, 1, store.replaced)
	require.Len(t, store.stations, 2)
	assert.Equal(t, "FR*S1*P1", store.stations[0].ID)
	require.NotNil(t, store.stations[0].DateMaj)
	assert.Equal(t, 2024, store.stations[0].DateMaj.Year())

	// Only the station with coordinates is indexed.
	assert.Equal(t, 1, index.Len())
}

func TestMissingFileIsNotFatalAndSeedsFromStorage(t *testing.T) {
	store := &fakeStore{stations: []models.Station{
		{ID: "FR*OLD*1", Coordonnees: &models.Coordinates{Longitude: 2.35, Latitude: 48.85}},
	}}
	index := geo.NewIndex()

	New(store, index, filepath.Join(t.TempDir(), "absent.json"), zap.NewNop()).Run(context.Background())

	assert.Zero(t, store.replaced, "no import must happen")
	assert.Equal(t, 1, index.Len(), "existing rows still seed the index")
}

func TestNonArrayDatasetIsSkipped(t *testing.T) {
	store := &fakeStore{}
	index := geo.NewIndex()

	New(store, index, writeDataset(t, `{"not": "an array"}`), zap.NewNop()).Run(context.Background())

	assert.Zero(t, store.replaced)
	assert.Zero(t, index.Len())
}

func TestMalformedJSONIsSkipped(t *testing.T) {
	store := &fakeStore{}
	New(store, geo.NewIndex(), writeDataset(t, `[{"id_pdc_itinerance": `), zap.NewNop()).Run(context.Background())
	assert.Zero(t, store.replaced)
}

func TestReplaceFailureKeepsExistingData(t *testing.T) {
	store := &fakeStore{
		stations:   []models.Station{{ID: "FR*OLD*1", Coordonnees: &models.Coordinates{Longitude: 2.35, Latitude: 48.85}}},
		replaceErr: os.ErrClosed,
	}
	index := geo.NewIndex()

	New(store, index, writeDataset(t, dataset), zap.NewNop()).Run(context.Background())

	assert.Equal(t, 1, index.Len(), "index falls back to what storage still holds")
}
