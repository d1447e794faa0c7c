// Package filter implements the multi-criteria station predicate. The same
// Criteria value drives both the SQL WHERE clause built by the repository
// and in-memory evaluation via Matches; the two must agree on every station.
package filter

import "voltmap/internal/models"

// Connector type values as the client sends them.
const (
	ConnectorType2   = "Type 2"
	ConnectorCCS     = "CCS"
	ConnectorChademo = "CHAdeMO"
)

// Criteria is a conjunction of optional constraints. Zero values mean
// "no constraint", not "must be absent".
type Criteria struct {
	MinPower      float64
	ConnectorType string
	Accessibility string
}

// IsZero reports whether no constraint is set.
func (c Criteria) IsZero() bool {
	return c.MinPower <= 0 && c.ConnectorType == "" && c.Accessibility == ""
}

// Matches reports whether the station satisfies every provided criterion.
func (c Criteria) Matches(s *models.Station) bool {
	if c.MinPower > 0 {
		if s.PuissanceNominale == nil || *s.PuissanceNominale < c.MinPower {
			return false
		}
	}

	// Only the three known connector values constrain the result;
	// anything else is ignored, matching the source mapping.
	switch c.ConnectorType {
	case ConnectorType2:
		if !boolValue(s.PriseType2) {
			return false
		}
	case ConnectorCCS:
		if !boolValue(s.PriseTypeComboCCS) {
			return false
		}
	case ConnectorChademo:
		if !boolValue(s.PriseTypeChademo) {
			return false
		}
	}

	switch models.AccessPolicy(c.Accessibility) {
	case models.AccessPublic:
		if s.AccessPolicy() != models.AccessPublic {
			return false
		}
	case models.AccessPrivate:
		if s.AccessPolicy() != models.AccessPrivate {
			return false
		}
	}

	return true
}

// Apply filters a fetched slice in memory with the same semantics as the
// repository query path.
func (c Criteria) Apply(stations []models.Station) []models.Station {
	if c.IsZero() {
		return stations
	}
	out := make([]models.Station, 0, len(stations))
	for i := range stations {
		if c.Matches(&stations[i]) {
			out = append(out, stations[i])
		}
	}
	return out
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
