package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
	defaultPingTimeout  = 5 * time.Second
)

// NewPostgres creates a pgx/stdlib backed *sql.DB pool and validates the
// connection.
func NewPostgres(dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("db: empty DSN")
	}

	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(defaultMaxOpenConns)
	pool.SetMaxIdleConns(defaultMaxIdleConns)
	pool.SetConnMaxLifetime(defaultConnLifetime)
	pool.SetConnMaxIdleTime(defaultConnIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// EnsureSchema creates the tables on startup when they do not exist yet.
// The stations table keeps the raw source document plus the handful of
// columns the search and filter queries hit.
func EnsureSchema(ctx context.Context, pool *sql.DB) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS stations (
			id                   TEXT PRIMARY KEY,
			nom_station          TEXT,
			puissance_nominale   DOUBLE PRECISION,
			condition_acces      TEXT,
			prise_type_2         BOOLEAN NOT NULL DEFAULT FALSE,
			prise_type_combo_ccs BOOLEAN NOT NULL DEFAULT FALSE,
			prise_type_chademo   BOOLEAN NOT NULL DEFAULT FALSE,
			longitude            DOUBLE PRECISION,
			latitude             DOUBLE PRECISION,
			doc                  JSONB NOT NULL,
			imported_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS reservations (
			id           TEXT PRIMARY KEY,
			station_id   TEXT NOT NULL,
			user_name    TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			start_time   TIMESTAMPTZ NOT NULL,
			end_time     TIMESTAMPTZ NOT NULL,
			status       TEXT NOT NULL DEFAULT 'pending',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_reservations_station ON reservations (station_id);
	`
	_, err := pool.ExecContext(ctx, schema)
	return err
}
