package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// AccessLibre is the canonical dataset value marking a freely accessible station.
const AccessLibre = "Accès libre"

// AccessPolicy classifies a station's access condition.
type AccessPolicy string

const (
	AccessPublic  AccessPolicy = "public"
	AccessPrivate AccessPolicy = "private"
)

// Coordinates is a [longitude, latitude] pair. The order follows the source
// dataset and must not be swapped: the geo index reads it positionally.
type Coordinates struct {
	Longitude float64
	Latitude  float64
}

// MarshalJSON encodes as a two-element array.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Longitude, c.Latitude})
}

// UnmarshalJSON rejects anything but a two-element numeric array.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinates: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates: expected [longitude, latitude], got %d elements", len(pair))
	}
	c.Longitude = pair[0]
	c.Latitude = pair[1]
	return nil
}

// Date wraps time.Time to accept both RFC3339 timestamps and plain
// YYYY-MM-DD values, which is how the station dataset writes its dates.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// UnmarshalJSON parses either supported layout. Empty and null are kept zero.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("date: unsupported value %q", raw)
}

// MarshalJSON always writes RFC3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Station is one charging point as published by the source dataset.
// Field names are the wire contract and round-trip verbatim through import,
// storage and the API. Every attribute the dataset may omit is a pointer.
type Station struct {
	ID                  string       `json:"id_pdc_itinerance"`
	Observations        *string      `json:"observations,omitempty"`
	PriseType2          *bool        `json:"prise_type_2,omitempty"`
	PriseTypeAutre      *bool        `json:"prise_type_autre,omitempty"`
	PriseTypeChademo    *bool        `json:"prise_type_chademo,omitempty"`
	PriseTypeComboCCS   *bool        `json:"prise_type_combo_ccs,omitempty"`
	PriseTypeEF         *bool        `json:"prise_type_ef,omitempty"`
	PuissanceNominale   *float64     `json:"puissance_nominale,omitempty"`
	NomAmenageur        *string      `json:"nom_amenageur,omitempty"`
	SirenAmenageur      *int64       `json:"siren_amenageur,omitempty"`
	ContactAmenageur    *string      `json:"contact_amenageur,omitempty"`
	NomOperateur        *string      `json:"nom_operateur,omitempty"`
	ContactOperateur    *string      `json:"contact_operateur,omitempty"`
	NomEnseigne         *string      `json:"nom_enseigne,omitempty"`
	IDStationItinerance *string      `json:"id_station_itinerance,omitempty"`
	NomStation          *string      `json:"nom_station,omitempty"`
	ImplantationStation *string      `json:"implantation_station,omitempty"`
	AdresseStation      *string      `json:"adresse_station,omitempty"`
	Coordonnees         *Coordinates `json:"coordonneesXY,omitempty"`
	NbrePDC             *int         `json:"nbre_pdc,omitempty"`
	Gratuit             *bool        `json:"gratuit,omitempty"`
	PaiementActe        *bool        `json:"paiement_acte,omitempty"`
	PaiementCB          *bool        `json:"paiement_cb,omitempty"`
	PaiementAutre       *bool        `json:"paiement_autre,omitempty"`
	ConditionAcces      *string      `json:"condition_acces,omitempty"`
	Reservation         *bool        `json:"reservation,omitempty"`
	Horaires            *string      `json:"horaires,omitempty"`
	AccessibilitePMR    *string      `json:"accessibilite_pmr,omitempty"`
	RestrictionGabarit  *string      `json:"restriction_gabarit,omitempty"`
	StationDeuxRoues    *bool        `json:"station_deux_roues,omitempty"`
	Raccordement        *string      `json:"raccordement,omitempty"`
	NumPDL              *string      `json:"num_pdl,omitempty"`
	DateMiseEnService   *Date        `json:"date_mise_en_service,omitempty"`
	DateMaj             *Date        `json:"date_maj,omitempty"`
}

// AccessPolicy translates the free-text access condition once: public means
// the exact canonical string, everything else (including absent) is private.
func (s *Station) AccessPolicy() AccessPolicy {
	if s.ConditionAcces != nil && *s.ConditionAcces == AccessLibre {
		return AccessPublic
	}
	return AccessPrivate
}

// Name returns the display name or empty when the dataset omitted it.
func (s *Station) Name() string {
	if s.NomStation == nil {
		return ""
	}
	return *s.NomStation
}
