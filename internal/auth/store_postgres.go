package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockdeck/internal/domain"
)

// PostgresUserStore persists users in PostgreSQL.
type PostgresUserStore struct {
	db *pgxpool.Pool
}

func NewPostgresUserStore(db *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

// EnsureSchema creates the users table if it does not exist.
func (s *PostgresUserStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL,
			last_login_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) Save(ctx context.Context, user domain.User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email         = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			last_login_at = EXCLUDED.last_login_at`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.LastLoginAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (domain.User, error) {
	return s.findOne(ctx, `SELECT id, email, password_hash, created_at, last_login_at FROM users WHERE id = $1`, id)
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.findOne(ctx, `SELECT id, email, password_hash, created_at, last_login_at FROM users WHERE lower(email) = lower($1)`, email)
}

func (s *PostgresUserStore) findOne(ctx context.Context, query, arg string) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
