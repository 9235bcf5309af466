package inventory

import (
	"context"

	"stockdeck/internal/domain"
	"stockdeck/pkg/apierrors"
)

// ErrNotFound keeps storage-specific 404s consistent across implementations.
var ErrNotFound = apierrors.New(apierrors.CodeNotFound, "record not found")

// ProductStore persists owner-scoped products. Every query filters on the
// owner ID and every write stamps it; a store must never return or touch
// another owner's rows.
type ProductStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	Insert(ctx context.Context, product domain.Product) error
	Update(ctx context.Context, product domain.Product) error
	Delete(ctx context.Context, ownerID, id string) error
}

// SaleStore persists owner-scoped sales. Sales are insert-only; no update or
// delete path exists.
type SaleStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Sale, error)
	Insert(ctx context.Context, sale domain.Sale) error
}
