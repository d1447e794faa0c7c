package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"voltmap/internal/booking"
	"voltmap/internal/models"
)

// ReservationStore is what ReservationsService needs from the repository.
type ReservationStore interface {
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	FindByID(ctx context.Context, id string) (*models.Reservation, error)
	SetStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error)
}

// ReservationsService validates and stores reservations. Overlapping time
// windows for the same station are allowed to coexist; nothing serializes
// concurrent bookings beyond the database's per-row writes.
type ReservationsService struct {
	repo   ReservationStore
	now    func() time.Time
	logger *zap.Logger
}

// NewReservationsService builds service.
func NewReservationsService(repo ReservationStore, logger *zap.Logger) *ReservationsService {
	return &ReservationsService{repo: repo, now: time.Now, logger: logger}
}

// CreateInput is a reservation submission.
type CreateInput struct {
	StationID   string
	UserName    string
	PhoneNumber string
	StartTime   time.Time
	EndTime     time.Time
}

// Create validates the submission and persists it with status pending.
func (s *ReservationsService) Create(ctx context.Context, in CreateInput) (*models.Reservation, error) {
	if strings.TrimSpace(in.StationID) == "" {
		return nil, &booking.ValidationError{Violations: []booking.Violation{booking.ViolationMissingStation}}
	}

	draft, err := booking.Validate(booking.Input{
		StationID:   in.StationID,
		UserName:    in.UserName,
		PhoneNumber: in.PhoneNumber,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}, s.now())
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		StationID:   draft.StationID,
		UserName:    draft.UserName,
		PhoneNumber: draft.PhoneNumber,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		Status:      draft.Status,
	}

	stored, err := s.repo.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}
	s.logger.Info("reservation created",
		zap.String("reservation_id", stored.ID),
		zap.String("station_id", stored.StationID),
	)
	return stored, nil
}

// List returns every reservation with its station resolved.
func (s *ReservationsService) List(ctx context.Context) ([]models.Reservation, error) {
	return s.repo.FindAll(ctx)
}

// Get returns one reservation with its station resolved.
func (s *ReservationsService) Get(ctx context.Context, id string) (*models.Reservation, error) {
	return s.repo.FindByID(ctx, id)
}

// SetStatus overwrites the status after checking enum membership. Any of
// the three values is legal from any current status.
func (s *ReservationsService) SetStatus(ctx context.Context, id, rawStatus string) (*models.Reservation, error) {
	status, err := models.ParseReservationStatus(rawStatus)
	if err != nil {
		return nil, &booking.ValidationError{Violations: []booking.Violation{booking.ViolationInvalidStatus}}
	}
	return s.repo.SetStatus(ctx, id, status)
}
