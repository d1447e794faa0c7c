// Package importer loads the station dataset from a JSON file at startup.
// The import is best effort: a missing or malformed file is logged and
// skipped, never fatal, and the server starts either way.
package importer

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"voltmap/internal/geo"
	"voltmap/internal/models"
)

// StationStore is the slice of the repository the importer needs.
type StationStore interface {
	ReplaceAll(ctx context.Context, stations []models.Station) error
	FindAll(ctx context.Context) ([]models.Station, error)
}

// Importer replaces the station set from a dataset file and keeps the geo
// index in sync with whatever ends up in storage.
type Importer struct {
	store  StationStore
	index  *geo.Index
	path   string
	logger *zap.Logger
}

// New returns importer.
func New(store StationStore, index *geo.Index, path string, logger *zap.Logger) *Importer {
	return &Importer{store: store, index: index, path: path, logger: logger}
}

// Run performs the one-time bootstrap. When the dataset file is unusable
// the existing rows are kept and still seed the geo index, so a restart
// without the file keeps serving nearby queries.
func (i *Importer) Run(ctx context.Context) {
	stations, ok := i.readDataset()
	if ok {
		if err := i.store.ReplaceAll(ctx, stations); err != nil {
			i.logger.Error("station import failed, keeping existing data", zap.Error(err))
			ok = false
		} else {
			i.logger.Info("stations imported", zap.Int("count", len(stations)))
		}
	}

	if !ok {
		existing, err := i.store.FindAll(ctx)
		if err != nil {
			i.logger.Error("failed to seed geo index from storage", zap.Error(err))
			return
		}
		stations = existing
	}

	i.index.Rebuild(stations)
	i.logger.Info("geo index rebuilt", zap.Int("indexed", i.index.Len()))
}

// readDataset reads and decodes the file; false means skip the import.
func (i *Importer) readDataset() ([]models.Station, bool) {
	data, err := os.ReadFile(i.path)
	if err != nil {
		if os.IsNotExist(err) {
			i.logger.Warn("stations dataset not found, import skipped", zap.String("path", i.path))
		} else {
			i.logger.Error("failed to read stations dataset", zap.String("path", i.path), zap.Error(err))
		}
		return nil, false
	}

	var stations []models.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		i.logger.Error("invalid stations dataset, import skipped", zap.String("path", i.path), zap.Error(err))
		return nil, false
	}
	return stations, true
}
