package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdeck/internal/domain"
)

func signedIn(id string) *domain.Principal {
	return &domain.Principal{ID: id}
}

func TestCache_EmptyUntilSignIn(t *testing.T) {
	c := NewCache()
	assert.Nil(t, c.Products("anyone"))

	applied := c.ApplyProducts("anyone", 0, []domain.Product{{ID: "p1"}})
	assert.False(t, applied, "fetch issued before sign-in must be discarded")
}

func TestCache_ApplyAndReadBack(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	owner, epoch := c.Tag()
	assert.True(t, c.Loading())

	require.True(t, c.ApplyProducts(owner, epoch, []domain.Product{{ID: "p1"}}))
	assert.False(t, c.Loading())

	products := c.Products("alice")
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)

	assert.Nil(t, c.Products("bob"), "collections are strictly per-owner")
}

func TestCache_StaleEpochDiscarded(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	// A fetch goes out, then the session flips before it lands.
	owner, epoch := c.Tag()
	c.OnAuthChange(nil)
	c.OnAuthChange(signedIn("alice"))

	applied := c.ApplySales(owner, epoch, []domain.Sale{{ID: "s1"}})
	assert.False(t, applied)
	assert.Empty(t, c.Sales("alice"))
	assert.False(t, c.Loading(), "even a discarded result clears loading")
}

func TestCache_CrossOwnerFetchDiscarded(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	owner, epoch := c.Tag()
	c.OnAuthChange(signedIn("bob"))

	assert.False(t, c.ApplyProducts(owner, epoch, []domain.Product{{ID: "p1"}}))
	assert.Empty(t, c.Products("bob"))
}

func TestCache_SignOutClearsSynchronously(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	owner, epoch := c.Tag()
	require.True(t, c.ApplyProducts(owner, epoch, []domain.Product{{ID: "p1"}}))
	owner, epoch = c.Tag()
	require.True(t, c.ApplySales(owner, epoch, []domain.Sale{{ID: "s1"}}))
	owner, epoch = c.Tag()
	require.True(t, c.ApplyNotifications(owner, epoch, []domain.Notification{{ID: "n1"}}))

	c.OnAuthChange(nil)

	// Every collection is gone by the time OnAuthChange returns.
	assert.Nil(t, c.Products("alice"))
	assert.Nil(t, c.Sales("alice"))
	assert.Nil(t, c.Notifications("alice"))
	assert.False(t, c.Loading())
}

func TestCache_SamePrincipalRepublishKeepsState(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	owner, epoch := c.Tag()
	require.True(t, c.ApplyProducts(owner, epoch, []domain.Product{{ID: "p1"}}))

	// Publishing the same identity again (e.g. a token refresh) is not a
	// session change.
	c.OnAuthChange(signedIn("alice"))
	assert.Len(t, c.Products("alice"), 1)
}

func TestCache_ClearLoadingKeepsData(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	owner, epoch := c.Tag()
	require.True(t, c.ApplyProducts(owner, epoch, []domain.Product{{ID: "p1"}}))

	c.Tag()
	c.ClearLoading()

	assert.False(t, c.Loading())
	assert.Len(t, c.Products("alice"), 1, "a failed refetch keeps the previous snapshot")
}

func TestCache_PatchProductMergesEditableFields(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	created := domain.Product{ID: "p1", Name: "Widget", Price: 10, Quantity: 5, OwnerID: "alice"}
	c.AppendProduct("alice", created)

	c.PatchProduct("alice", domain.Product{ID: "p1", Name: "Widget v2", Category: "Tools", Price: 12, Quantity: 4})

	products := c.Products("alice")
	require.Len(t, products, 1)
	assert.Equal(t, "Widget v2", products[0].Name)
	assert.Equal(t, "Tools", products[0].Category)
	assert.Equal(t, 12.0, products[0].Price)
	assert.Equal(t, 4, products[0].Quantity)
	assert.Equal(t, created.CreatedAt, products[0].CreatedAt)
}

func TestCache_RemoveProduct(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	c.AppendProduct("alice", domain.Product{ID: "p1"})
	c.AppendProduct("alice", domain.Product{ID: "p2"})

	c.RemoveProduct("alice", "p1")

	products := c.Products("alice")
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID)

	c.RemoveProduct("alice", "missing")
	assert.Len(t, c.Products("alice"), 1)
}

func TestCache_MutationsIgnoredForOtherOwner(t *testing.T) {
	c := NewCache()
	c.OnAuthChange(signedIn("alice"))

	c.AppendProduct("bob", domain.Product{ID: "p1"})
	assert.Empty(t, c.Products("alice"))
}
