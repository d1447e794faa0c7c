package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"voltmap/internal/filter"
	"voltmap/internal/models"
	"voltmap/internal/service"
)

// StationsHandlers serves the station search and lookup endpoints.
type StationsHandlers struct {
	svc                *service.StationsService
	defaultMaxDistance float64
	logger             *zap.Logger
}

// NewStationsHandlers returns handlers.
func NewStationsHandlers(svc *service.StationsService, defaultMaxDistance float64, logger *zap.Logger) *StationsHandlers {
	if defaultMaxDistance <= 0 {
		defaultMaxDistance = 10000
	}
	return &StationsHandlers{svc: svc, defaultMaxDistance: defaultMaxDistance, logger: logger}
}

// List handles GET /stations.
func (h *StationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(stations))
}

// Search handles GET /stations/search?query=.
func (h *StationsHandlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	stations, err := h.svc.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(stations))
}

// Nearby handles GET /stations/nearby?longitude=&latitude=&maxDistance=.
func (h *StationsHandlers) Nearby(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	longitude, err := strconv.ParseFloat(params.Get("longitude"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid longitude")
		return
	}
	latitude, err := strconv.ParseFloat(params.Get("latitude"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid latitude")
		return
	}

	maxDistance := h.defaultMaxDistance
	if raw := params.Get("maxDistance"); raw != "" {
		maxDistance, err = strconv.ParseFloat(raw, 64)
		if err != nil || maxDistance < 0 {
			writeError(w, http.StatusBadRequest, "invalid maxDistance")
			return
		}
	}

	stations, err := h.svc.Nearby(r.Context(), longitude, latitude, maxDistance)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(stations))
}

// Filter handles GET /stations/filter?power=&connectorType=&accessibility=.
func (h *StationsHandlers) Filter(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	criteria := filter.Criteria{
		ConnectorType: params.Get("connectorType"),
		Accessibility: params.Get("accessibility"),
	}
	if raw := params.Get("power"); raw != "" {
		power, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid power")
			return
		}
		criteria.MinPower = power
	}

	stations, err := h.svc.Filter(r.Context(), criteria)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(stations))
}

// Get handles GET /stations/{id}.
func (h *StationsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	station, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

func emptyIfNil(stations []models.Station) []models.Station {
	if stations == nil {
		return []models.Station{}
	}
	return stations
}
