package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"voltmap/internal/models"
)

// ErrReservationNotFound indicates a missing reservation id.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepository persists reservations. Create performs no overlap
// check against other reservations for the same station; double-booking is
// an accepted property of this workflow.
type ReservationRepository struct {
	db *sql.DB
}

// NewReservationRepository returns repository.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create persists a new reservation with a generated id and a
// server-assigned creation timestamp, returning the stored record.
func (r *ReservationRepository) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	const query = `
		INSERT INTO reservations (id, station_id, user_name, phone_number, start_time, end_time, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`
	reservation.ID = uuid.NewString()
	if reservation.Status == "" {
		reservation.Status = models.ReservationPending
	}
	err := r.db.QueryRowContext(ctx, query,
		reservation.ID,
		reservation.StationID,
		reservation.UserName,
		reservation.PhoneNumber,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Status,
	).Scan(&reservation.CreatedAt)
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// FindAll returns every reservation, newest first, with the referenced
// station resolved when it still exists.
func (r *ReservationRepository) FindAll(ctx context.Context) ([]models.Reservation, error) {
	const query = `
		SELECT r.id, r.station_id, r.user_name, r.phone_number, r.start_time, r.end_time, r.status, r.created_at, s.doc
		FROM reservations r
		LEFT JOIN stations s ON s.id = r.station_id
		ORDER BY r.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservations, nil
}

// FindByID returns one reservation with its station resolved, or
// ErrReservationNotFound.
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*models.Reservation, error) {
	const query = `
		SELECT r.id, r.station_id, r.user_name, r.phone_number, r.start_time, r.end_time, r.status, r.created_at, s.doc
		FROM reservations r
		LEFT JOIN stations s ON s.id = r.station_id
		WHERE r.id = $1
	`
	reservation, err := scanReservation(func(dest ...any) error {
		return r.db.QueryRowContext(ctx, query, id).Scan(dest...)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

// SetStatus overwrites the status unconditionally and returns the updated
// record. There is no transition graph: any enum value is accepted at any
// time, including moving a confirmed reservation back to pending.
func (r *ReservationRepository) SetStatus(ctx context.Context, id string, status models.ReservationStatus) (*models.Reservation, error) {
	const query = `
		UPDATE reservations
		SET status = $2
		WHERE id = $1
		RETURNING id, station_id, user_name, phone_number, start_time, end_time, status, created_at
	`
	var reservation models.Reservation
	err := r.db.QueryRowContext(ctx, query, id, status).Scan(
		&reservation.ID,
		&reservation.StationID,
		&reservation.UserName,
		&reservation.PhoneNumber,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Status,
		&reservation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func scanReservation(scan func(dest ...any) error) (*models.Reservation, error) {
	var (
		reservation models.Reservation
		doc         []byte
	)
	if err := scan(
		&reservation.ID,
		&reservation.StationID,
		&reservation.UserName,
		&reservation.PhoneNumber,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Status,
		&reservation.CreatedAt,
		&doc,
	); err != nil {
		return nil, err
	}
	if len(doc) > 0 {
		var station models.Station
		if err := json.Unmarshal(doc, &station); err != nil {
			return nil, err
		}
		reservation.Station = &station
	}
	return &reservation, nil
}
