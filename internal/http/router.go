package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	StationsList      http.HandlerFunc
	StationsSearch    http.HandlerFunc
	StationsNearby    http.HandlerFunc
	StationsFilter    http.HandlerFunc
	StationByID       http.HandlerFunc
	ReservationCreate http.HandlerFunc
	ReservationsList  http.HandlerFunc
	ReservationByID   http.HandlerFunc
	ReservationStatus http.HandlerFunc
	Health            http.HandlerFunc
}

// NewRouter registers endpoints. The literal /stations/ subpaths take
// precedence over the {id} wildcard by ServeMux specificity.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.StationsList != nil {
		mux.Handle("GET /stations", routes.StationsList)
	}
	if routes.StationsSearch != nil {
		mux.Handle("GET /stations/search", routes.StationsSearch)
	}
	if routes.StationsNearby != nil {
		mux.Handle("GET /stations/nearby", routes.StationsNearby)
	}
	if routes.StationsFilter != nil {
		mux.Handle("GET /stations/filter", routes.StationsFilter)
	}
	if routes.StationByID != nil {
		mux.Handle("GET /stations/{id}", routes.StationByID)
	}
	if routes.ReservationCreate != nil {
		mux.Handle("POST /reservations", routes.ReservationCreate)
	}
	if routes.ReservationsList != nil {
		mux.Handle("GET /reservations", routes.ReservationsList)
	}
	if routes.ReservationByID != nil {
		mux.Handle("GET /reservations/{id}", routes.ReservationByID)
	}
	if routes.ReservationStatus != nil {
		mux.Handle("PATCH /reservations/{id}/status", routes.ReservationStatus)
	}
	if routes.Health != nil {
		mux.Handle("GET /health", routes.Health)
	}
	return mux
}
