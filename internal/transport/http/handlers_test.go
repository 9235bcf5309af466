package httptransport

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdeck/internal/domain"
	"stockdeck/pkg/apierrors"
	"stockdeck/pkg/testutil"
)

// Direct handler tests bypass the router and middleware; the auth context is
// stamped the way RequireAuth would.

func TestHandleCreateProduct_Direct(t *testing.T) {
	e := newEnv(t)
	handler := NewHandler(e.authSvc, e.inventory, discardLogger())

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/products",
		map[string]string{"name": "Widget", "category": "Hardware", "price": "10", "quantity": "3"})
	req = testutil.WithAuth(req, "user-1", "session-1")

	rr := testutil.DoRequest(http.HandlerFunc(handler.handleCreateProduct), req)
	testutil.AssertStatus(t, rr, http.StatusCreated)

	created := testutil.UnmarshalResponse[productView](t, rr)
	assert.Equal(t, "user-1", created.OwnerID)
}

func TestHandleListProducts_Direct(t *testing.T) {
	e := newEnv(t)
	handler := NewHandler(e.authSvc, e.inventory, discardLogger())

	req := testutil.WithAuth(testutil.NewRequest(t, http.MethodGet, "/api/products"), "user-1", "session-1")
	rr := testutil.DoRequest(http.HandlerFunc(handler.handleListProducts), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	listed := testutil.UnmarshalResponse[[]productView](t, rr)
	assert.Empty(t, *listed)
}

func TestHandleRecordSale_MalformedBody(t *testing.T) {
	e := newEnv(t)
	handler := NewHandler(e.authSvc, e.inventory, discardLogger())

	req := testutil.NewRequest(t, http.MethodPost, "/api/sales")
	req = testutil.WithAuth(req, "user-1", "session-1")

	rr := testutil.DoRequest(http.HandlerFunc(handler.handleRecordSale), req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, string(apierrors.CodeInvalidInput))
}

func TestToProductViews(t *testing.T) {
	views := toProductViews([]domain.Product{
		{ID: "p1", Quantity: 0},
		{ID: "p2", Quantity: 3},
		{ID: "p3", Quantity: 10},
	})
	require.Len(t, views, 3)
	assert.Equal(t, "Out of Stock", views[0].Status)
	assert.Equal(t, "Low Stock", views[1].Status)
	assert.Equal(t, "In Stock", views[2].Status)
}
