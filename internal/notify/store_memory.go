package notify

import (
	"context"
	"sync"

	"stockdeck/internal/domain"
)

// InMemoryStore keeps notifications per owner; favors clarity over
// performance, like the other memory stores.
type InMemoryStore struct {
	mu            sync.RWMutex
	notifications map[string][]domain.Notification
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{notifications: make(map[string][]domain.Notification)}
}

func (s *InMemoryStore) Insert(_ context.Context, notification domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[notification.OwnerID] = append(s.notifications[notification.OwnerID], notification)
	return nil
}

func (s *InMemoryStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notification{}, s.notifications[ownerID]...), nil
}
