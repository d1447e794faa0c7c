package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"voltmap/internal/filter"
	"voltmap/internal/models"
)

// ErrStationNotFound indicates a missing station id.
var ErrStationNotFound = errors.New("station not found")

// StationRepository persists stations. Each row keeps the verbatim source
// document alongside the columns the query paths need, so the wire field
// names survive storage untouched.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// FindAll returns every station in storage order.
func (r *StationRepository) FindAll(ctx context.Context) ([]models.Station, error) {
	const query = `SELECT doc FROM stations`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStations(rows)
}

// FindByID returns one station or ErrStationNotFound.
func (r *StationRepository) FindByID(ctx context.Context, id string) (*models.Station, error) {
	const query = `SELECT doc FROM stations WHERE id = $1`
	var doc []byte
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	var station models.Station
	if err := json.Unmarshal(doc, &station); err != nil {
		return nil, err
	}
	return &station, nil
}

// SearchByName matches the query as a case-insensitive substring of the
// station name, capped at limit.
func (r *StationRepository) SearchByName(ctx context.Context, name string, limit int) ([]models.Station, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT doc FROM stations
		WHERE nom_station ILIKE '%' || $1 || '%'
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStations(rows)
}

// Filter returns stations matching the conjunction of the provided
// criteria. The WHERE clause is built from the same Criteria value the
// in-memory predicate evaluates, keeping the two paths in agreement:
// a NULL puissance_nominale never satisfies the power bound, and the
// private accessibility branch uses IS DISTINCT FROM so rows without an
// access condition still count as private.
func (r *StationRepository) Filter(ctx context.Context, c filter.Criteria) ([]models.Station, error) {
	query := `SELECT doc FROM stations`
	var (
		where []string
		args  []any
	)

	if c.MinPower > 0 {
		args = append(args, c.MinPower)
		where = append(where, fmt.Sprintf("puissance_nominale >= $%d", len(args)))
	}

	switch c.ConnectorType {
	case filter.ConnectorType2:
		where = append(where, "prise_type_2 IS TRUE")
	case filter.ConnectorCCS:
		where = append(where, "prise_type_combo_ccs IS TRUE")
	case filter.ConnectorChademo:
		where = append(where, "prise_type_chademo IS TRUE")
	}

	switch models.AccessPolicy(c.Accessibility) {
	case models.AccessPublic:
		args = append(args, models.AccessLibre)
		where = append(where, fmt.Sprintf("condition_acces = $%d", len(args)))
	case models.AccessPrivate:
		args = append(args, models.AccessLibre)
		where = append(where, fmt.Sprintf("condition_acces IS DISTINCT FROM $%d", len(args)))
	}

	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStations(rows)
}

// ReplaceAll deletes every station and bulk-inserts the given set in one
// transaction, which is how the bootstrap import refreshes the dataset.
func (r *StationRepository) ReplaceAll(ctx context.Context, stations []models.Station) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stations`); err != nil {
		return err
	}

	const insert = `
		INSERT INTO stations (
			id, nom_station, puissance_nominale, condition_acces,
			prise_type_2, prise_type_combo_ccs, prise_type_chademo,
			longitude, latitude, doc
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range stations {
		s := &stations[i]
		doc, err := json.Marshal(s)
		if err != nil {
			return err
		}
		var longitude, latitude *float64
		if s.Coordonnees != nil {
			longitude = &s.Coordonnees.Longitude
			latitude = &s.Coordonnees.Latitude
		}
		if _, err := stmt.ExecContext(ctx,
			s.ID,
			s.NomStation,
			s.PuissanceNominale,
			s.ConditionAcces,
			boolOrFalse(s.PriseType2),
			boolOrFalse(s.PriseTypeComboCCS),
			boolOrFalse(s.PriseTypeChademo),
			longitude,
			latitude,
			doc,
		); err != nil {
			return fmt.Errorf("insert station %s: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

func scanStations(rows *sql.Rows) ([]models.Station, error) {
	var stations []models.Station
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var station models.Station
		if err := json.Unmarshal(doc, &station); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}

func boolOrFalse(b *bool) bool {
	return b != nil && *b
}
