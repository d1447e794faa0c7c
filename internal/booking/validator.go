// Package booking validates reservation drafts before they reach storage.
package booking

import (
	"fmt"
	"strings"
	"time"

	"voltmap/internal/models"
)

// Violation identifies one failed validation rule.
type Violation string

const (
	ViolationMissingStation Violation = "missing_station"
	ViolationMissingName    Violation = "missing_name"
	ViolationMissingPhone   Violation = "missing_phone"
	ViolationInvalidRange   Violation = "invalid_range"
	ViolationPastStart      Violation = "past_start"
	ViolationInvalidStatus  Violation = "invalid_status"
)

// ValidationError carries every violation found, in rule order, so callers
// can show all of them at once.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = string(v)
	}
	return fmt.Sprintf("invalid reservation: %s", strings.Join(parts, ", "))
}

// Has reports whether the error includes the given violation.
func (e *ValidationError) Has(v Violation) bool {
	for _, got := range e.Violations {
		if got == v {
			return true
		}
	}
	return false
}

// Input is a proposed reservation as submitted.
type Input struct {
	StationID   string
	UserName    string
	PhoneNumber string
	StartTime   time.Time
	EndTime     time.Time
}

// Draft is a validated reservation ready for persistence: instants
// normalized to UTC, station reference attached, status pending.
type Draft struct {
	StationID   string
	UserName    string
	PhoneNumber string
	StartTime   time.Time
	EndTime     time.Time
	Status      models.ReservationStatus
}

// Validate checks the draft against the rules in order: missing name,
// missing phone, start >= end, start in the past relative to now. All
// applicable violations are collected rather than short-circuited.
func Validate(in Input, now time.Time) (*Draft, error) {
	var violations []Violation

	if strings.TrimSpace(in.UserName) == "" {
		violations = append(violations, ViolationMissingName)
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		violations = append(violations, ViolationMissingPhone)
	}
	if !in.StartTime.Before(in.EndTime) {
		violations = append(violations, ViolationInvalidRange)
	}
	if in.StartTime.Before(now) {
		violations = append(violations, ViolationPastStart)
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return &Draft{
		StationID:   in.StationID,
		UserName:    in.UserName,
		PhoneNumber: in.PhoneNumber,
		StartTime:   in.StartTime.UTC(),
		EndTime:     in.EndTime.UTC(),
		Status:      models.ReservationPending,
	}, nil
}

// CombineDateTime composes a calendar date with a time-of-day, the way the
// booking form builds its start and end instants.
func CombineDateTime(day, clock time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		day.Location(),
	)
}
