package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors mapped by handlers to 404 / 400 responses.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate value")
)

// PostgresStore handles user and task CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users and tasks tables if they don't exist. Deleting
// a user cascades to their tasks via the foreign key.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			first_name       VARCHAR(100) NOT NULL,
			last_name        VARCHAR(100) NOT NULL,
			username         VARCHAR(50)  UNIQUE NOT NULL,
			email            VARCHAR(255) UNIQUE NOT NULL,
			password         VARCHAR(255) NOT NULL,
			date_created     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			token            VARCHAR(64)  UNIQUE,
			token_expiration TIMESTAMPTZ
		)
	`)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tasks (
			id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title       VARCHAR(100) NOT NULL,
			description TEXT         NOT NULL,
			completed   BOOLEAN      NOT NULL DEFAULT FALSE,
			created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			due_date    TIMESTAMPTZ,
			user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE
		)
	`)
	return err
}

// mapErr translates driver errors into the store's sentinel errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
