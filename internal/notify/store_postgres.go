package notify

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockdeck/internal/domain"
)

// PostgresStore persists notifications in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the notifications table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS notifications (
			id         UUID PRIMARY KEY,
			message    TEXT NOT NULL,
			type       TEXT NOT NULL,
			owner_id   UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure notifications schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, notification domain.Notification) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO notifications (id, message, type, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		notification.ID, notification.Message, string(notification.Type), notification.OwnerID, notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, message, type, owner_id, created_at
		FROM notifications WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Type, &n.OwnerID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
