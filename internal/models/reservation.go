package models

import (
	"fmt"
	"time"
)

// ReservationStatus is the reservation lifecycle value. Any status may be
// set at any time; there is deliberately no transition graph.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus validates membership in the status enum.
func ParseReservationStatus(raw string) (ReservationStatus, error) {
	switch s := ReservationStatus(raw); s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", raw)
	}
}

// Reservation is a time-bounded booking of a station by a named requester.
// Station carries the resolved station record on read paths that join it.
type Reservation struct {
	ID          string            `json:"id"`
	StationID   string            `json:"stationId"`
	UserName    string            `json:"userName"`
	PhoneNumber string            `json:"phoneNumber"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	Status      ReservationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	Station     *Station          `json:"station,omitempty"`
}
