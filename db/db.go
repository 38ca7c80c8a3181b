package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Connect opens an instrumented Postgres handle.
func Connect(dsn string) (*sqlx.DB, error) {
	sqlDB, err := otelsql.Open("postgres", dsn, otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("could not open postgres connection: %w", err)
	}
	return sqlx.NewDb(sqlDB, "postgres"), nil
}

// InitializeProviderSchema creates the provider's event table. room_id is
// unique: the provider keeps exactly one row per room.
func InitializeProviderSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id bigserial PRIMARY KEY,
			hotel_id bigint NOT NULL,
			timestamp timestamptz NOT NULL,
			rpg_status int NOT NULL,
			room_id text NOT NULL UNIQUE,
			night_of_stay date NOT NULL
		);
		CREATE INDEX IF NOT EXISTS events_hotel_id_idx ON events (hotel_id);
		CREATE INDEX IF NOT EXISTS events_timestamp_idx ON events (timestamp);
	`)
	if err != nil {
		return fmt.Errorf("could not initialize provider schema: %w", err)
	}

	return nil
}

// InitializeMirrorSchema creates the dashboard's mirror table. The mirror
// is an append-only log, so room_id carries no uniqueness constraint.
func InitializeMirrorSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS mirror_events (
			id bigserial PRIMARY KEY,
			hotel_id bigint NOT NULL,
			timestamp timestamptz NOT NULL,
			rpg_status int NOT NULL,
			room_id text NOT NULL,
			night_of_stay date NOT NULL
		);
		CREATE INDEX IF NOT EXISTS mirror_events_timestamp_idx ON mirror_events (timestamp);
		CREATE INDEX IF NOT EXISTS mirror_events_hotel_id_night_idx ON mirror_events (hotel_id, night_of_stay);
	`)
	if err != nil {
		return fmt.Errorf("could not initialize mirror schema: %w", err)
	}

	return nil
}
