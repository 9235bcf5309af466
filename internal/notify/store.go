package notify

import (
	"context"

	"stockdeck/internal/domain"
)

// Store persists owner-scoped notifications. Entries are written once and
// read back as a list; there is no update or delete path.
type Store interface {
	Insert(ctx context.Context, notification domain.Notification) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Notification, error)
}
