package inventory

import (
	"context"
	"sync"

	"stockdeck/internal/domain"
)

// In-memory stores keep the default wiring lightweight and testable. They
// intentionally favor clarity over performance.
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{products: make(map[string]domain.Product)}
}

func (s *InMemoryProductStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0)
	for _, id := range s.order {
		if p, ok := s.products[id]; ok && p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *InMemoryProductStore) Insert(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		s.order = append(s.order, product.ID)
	}
	s.products[product.ID] = product
	return nil
}

func (s *InMemoryProductStore) Update(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[product.ID]
	if !ok || existing.OwnerID != product.OwnerID {
		return ErrNotFound
	}
	// Creation metadata survives the overwrite of the editable fields.
	product.CreatedAt = existing.CreatedAt
	s.products[product.ID] = product
	return nil
}

func (s *InMemoryProductStore) Delete(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[id]
	if !ok || existing.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.products, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

type InMemorySaleStore struct {
	mu    sync.RWMutex
	sales map[string][]domain.Sale
}

func NewInMemorySaleStore() *InMemorySaleStore {
	return &InMemorySaleStore{sales: make(map[string][]domain.Sale)}
}

func (s *InMemorySaleStore) ListByOwner(_ context.Context, ownerID string) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Sale{}, s.sales[ownerID]...), nil
}

func (s *InMemorySaleStore) Insert(_ context.Context, sale domain.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales[sale.OwnerID] = append(s.sales[sale.OwnerID], sale)
	return nil
}
