package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"voltmap/internal/models"
	"voltmap/internal/service"
)

// ReservationsHandlers serves the reservation workflow endpoints.
type ReservationsHandlers struct {
	svc    *service.ReservationsService
	logger *zap.Logger
}

// NewReservationsHandlers returns handlers.
func NewReservationsHandlers(svc *service.ReservationsService, logger *zap.Logger) *ReservationsHandlers {
	return &ReservationsHandlers{svc: svc, logger: logger}
}

type createReservationRequest struct {
	StationID   string    `json:"stationId"`
	UserName    string    `json:"userName"`
	PhoneNumber string    `json:"phoneNumber"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// Create handles POST /reservations.
func (h *ReservationsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reservation, err := h.svc.Create(r.Context(), service.CreateInput{
		StationID:   req.StationID,
		UserName:    req.UserName,
		PhoneNumber: req.PhoneNumber,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

// List handles GET /reservations.
func (h *ReservationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	writeJSON(w, http.StatusOK, reservations)
}

// Get handles GET /reservations/{id}.
func (h *ReservationsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	reservation, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /reservations/{id}/status.
func (h *ReservationsHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reservation, err := h.svc.SetStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}
