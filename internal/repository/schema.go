package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('user', 'owner')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS slots (
		slot_id      BIGSERIAL PRIMARY KEY,
		date         DATE NOT NULL,
		start_time   TIME NOT NULL,
		end_time     TIME NOT NULL,
		availability BOOLEAN NOT NULL DEFAULT true,
		CONSTRAINT slots_date_start_time_key UNIQUE (date, start_time)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		booking_id          BIGSERIAL PRIMARY KEY,
		user_id             BIGINT NOT NULL REFERENCES users (user_id),
		slot_id             BIGINT NOT NULL REFERENCES slots (slot_id),
		confirmation_status BOOLEAN NOT NULL DEFAULT true,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_user_id_idx ON bookings (user_id)`,
	`CREATE INDEX IF NOT EXISTS bookings_slot_id_idx ON bookings (slot_id)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
