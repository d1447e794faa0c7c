package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voltmap/internal/config"
	"voltmap/internal/db"
	"voltmap/internal/geo"
	httpserver "voltmap/internal/http"
	"voltmap/internal/http/handlers"
	"voltmap/internal/importer"
	redisstore "voltmap/internal/redis"
	"voltmap/internal/repository"
	"voltmap/internal/service"
)

// App wires the service dependency graph.
type App struct {
	server      *httpserver.Server
	importer    *importer.Importer
	pool        *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	pool, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		pool.Close()
		return nil, err
	}

	var (
		redisClient  *redis.Client
		stationCache *redisstore.StationStore
	)
	if cfg.CacheEnabled() {
		redisClient, err = redisstore.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			pool.Close()
			return nil, err
		}
		stationCache = redisstore.NewStationStore(redisClient, cfg.CacheTTL())
	}

	stationRepo := repository.NewStationRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)

	index := geo.NewIndex()
	dataImporter := importer.New(stationRepo, index, cfg.Import.Path, logger)

	stationsService := service.NewStationsService(stationRepo, index, stationCache, cfg.Search.Limit, logger)
	reservationsService := service.NewReservationsService(reservationRepo, logger)

	stationsHandlers := handlers.NewStationsHandlers(stationsService, cfg.Search.MaxDistance, logger)
	reservationsHandlers := handlers.NewReservationsHandlers(reservationsService, logger)

	routes := httpserver.Routes{
		StationsList:      stationsHandlers.List,
		StationsSearch:    stationsHandlers.Search,
		StationsNearby:    stationsHandlers.Nearby,
		StationsFilter:    stationsHandlers.Filter,
		StationByID:       stationsHandlers.Get,
		ReservationCreate: reservationsHandlers.Create,
		ReservationsList:  reservationsHandlers.List,
		ReservationByID:   reservationsHandlers.Get,
		ReservationStatus: reservationsHandlers.UpdateStatus,
		Health:            handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		importer:    dataImporter,
		pool:        pool,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run performs the best-effort dataset import and starts the HTTP server.
func (a *App) Run(ctx context.Context) error {
	a.importer.Run(ctx)
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.pool != nil {
		if err := a.pool.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
