package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ayush/task-tracker/internal/models"
)

func (s *PostgresStore) CreateUser(ctx context.Context, firstName, lastName, username, email, hashedPassword string) (*models.User, error) {
	u := models.User{
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (first_name, last_name, username, email, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, date_created`,
		firstName, lastName, username, email, hashedPassword,
	).Scan(&u.ID, &u.DateCreated)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", mapErr(err))
	}
	return &u, nil
}

const userColumns = `id, first_name, last_name, username, email, password, date_created, token, token_expiration`

func (s *PostgresStore) scanUser(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Username, &u.Email,
		&u.Password, &u.DateCreated, &u.Token, &u.TokenExpiration,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (s *PostgresStore) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE token = $1`, token)
}

// UsernameOrEmailTaken reports whether any user already holds the username
// or the email.
func (s *PostgresStore) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var taken bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)`,
		username, email,
	).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check username/email: %w", err)
	}
	return taken, nil
}

// SaveToken persists a freshly issued bearer token for the user.
func (s *PostgresStore) SaveToken(ctx context.Context, userID, token string, expiration time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET token = $1, token_expiration = $2 WHERE id = $3`,
		token, expiration, userID,
	)
	if err != nil {
		return fmt.Errorf("save token: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUser writes the mutable profile fields back to the row.
func (s *PostgresStore) UpdateUser(ctx context.Context, u *models.User) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, username = $3, email = $4, password = $5
		 WHERE id = $6`,
		u.FirstName, u.LastName, u.Username, u.Email, u.Password, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", mapErr(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user; owned tasks go with it via the FK cascade.
func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
