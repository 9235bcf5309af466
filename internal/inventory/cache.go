package inventory

import (
	"sync"

	"stockdeck/internal/domain"
)

// Cache holds the current principal's fetched collections so mutations can
// patch local state instead of re-reading the store. It subscribes to the
// auth tracker: a sign-out (or identity change) clears everything
// synchronously, before the publish returns, so the next principal can never
// see a previous session's records.
//
// Fetches are tagged with the owner and epoch they were issued under; Apply*
// discards results whose tag no longer matches, which is the guard against
// an in-flight fetch for a stale principal landing after a sign-out.
type Cache struct {
	mu            sync.RWMutex
	ownerID       string
	epoch         uint64
	loading       bool
	products      []domain.Product
	sales         []domain.Sale
	notifications []domain.Notification
}

func NewCache() *Cache {
	return &Cache{}
}

// OnAuthChange is the tracker subscription. Nil means signed out; a new
// identity also resets state since collections are strictly per-owner.
func (c *Cache) OnAuthChange(principal *domain.Principal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if principal != nil && principal.ID == c.ownerID {
		return
	}
	c.epoch++
	c.products = nil
	c.sales = nil
	c.notifications = nil
	c.loading = false
	if principal == nil {
		c.ownerID = ""
		return
	}
	c.ownerID = principal.ID
}

// Tag returns the owner and epoch a fetch should carry back to Apply*.
// It also raises the loading flag.
func (c *Cache) Tag() (string, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	return c.ownerID, c.epoch
}

// ClearLoading drops the loading flag without touching cached state. Failed
// fetches degrade to an empty result for the caller but must not wipe what an
// earlier successful fetch installed.
func (c *Cache) ClearLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}

// Loading reports whether a fetch is in flight.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Cache) matches(ownerID string, epoch uint64) bool {
	return c.ownerID == ownerID && c.epoch == epoch
}

// ApplyProducts installs fetched products. Stale tags are dropped; the
// loading flag clears either way.
func (c *Cache) ApplyProducts(ownerID string, epoch uint64, products []domain.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if !c.matches(ownerID, epoch) {
		return false
	}
	c.products = products
	return true
}

// ApplySales installs fetched sales under the same staleness rules.
func (c *Cache) ApplySales(ownerID string, epoch uint64, sales []domain.Sale) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if !c.matches(ownerID, epoch) {
		return false
	}
	c.sales = sales
	return true
}

// ApplyNotifications installs fetched notifications under the same rules.
func (c *Cache) ApplyNotifications(ownerID string, epoch uint64, notifications []domain.Notification) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if !c.matches(ownerID, epoch) {
		return false
	}
	c.notifications = notifications
	return true
}

// Products returns a copy of the cached products for ownerID, or nil when the
// cache belongs to someone else (or nobody).
func (c *Cache) Products(ownerID string) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ownerID != ownerID {
		return nil
	}
	return append([]domain.Product(nil), c.products...)
}

// Sales returns a copy of the cached sales for ownerID.
func (c *Cache) Sales(ownerID string) []domain.Sale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ownerID != ownerID {
		return nil
	}
	return append([]domain.Sale(nil), c.sales...)
}

// Notifications returns a copy of the cached notifications for ownerID.
func (c *Cache) Notifications(ownerID string) []domain.Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ownerID != ownerID {
		return nil
	}
	return append([]domain.Notification(nil), c.notifications...)
}

// AppendProduct adds a freshly created product to the local snapshot.
func (c *Cache) AppendProduct(ownerID string, product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownerID != ownerID {
		return
	}
	c.products = append(c.products, product)
}

// PatchProduct overwrites the editable fields of the id-matched entry in
// place, leaving creation metadata intact.
func (c *Cache) PatchProduct(ownerID string, product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownerID != ownerID {
		return
	}
	for i := range c.products {
		if c.products[i].ID == product.ID {
			c.products[i].Name = product.Name
			c.products[i].Category = product.Category
			c.products[i].Price = product.Price
			c.products[i].Quantity = product.Quantity
			return
		}
	}
}

// RemoveProduct drops the id-matched entry.
func (c *Cache) RemoveProduct(ownerID, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ownerID != ownerID {
		return
	}
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return
		}
	}
}
