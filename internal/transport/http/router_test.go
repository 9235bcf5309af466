package httptransport

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockdeck/internal/auth"
	"stockdeck/internal/domain"
	"stockdeck/internal/inventory"
	"stockdeck/internal/jwttoken"
	"stockdeck/internal/notify"
	"stockdeck/pkg/apierrors"
	"stockdeck/pkg/testutil"
)

type env struct {
	router    http.Handler
	authSvc   *auth.Service
	inventory *inventory.Service
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newEnv(t *testing.T) *env {
	t.Helper()
	log := discardLogger()
	tokens := jwttoken.NewJWTService("test-signing-key", "stockdeck-test")

	tracker := auth.NewTracker()
	authSvc := auth.NewService(
		auth.NewInMemoryUserStore(),
		auth.NewInMemorySessionStore(time.Hour),
		tokens,
		tracker,
		nil,
		log,
		time.Hour,
		bcrypt.MinCost,
	)

	cache := inventory.NewCache()
	tracker.Subscribe(cache.OnAuthChange)
	emitter := notify.NewEmitter(notify.NewInMemoryStore(), nil, log)
	inventorySvc := inventory.NewService(
		inventory.NewInMemoryProductStore(),
		inventory.NewInMemorySaleStore(),
		emitter,
		cache,
		nil,
		log,
	)

	handler := NewHandler(authSvc, inventorySvc, log)
	return &env{
		router:    NewRouter(handler, tokens),
		authSvc:   authSvc,
		inventory: inventorySvc,
	}
}

// signUpAndIn provisions an account through the public endpoints and returns
// a bearer token.
func (e *env) signUpAndIn(t *testing.T, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "secret1"}

	rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup", creds))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signin", creds))
	testutil.AssertStatus(t, rr, http.StatusOK)

	body := testutil.UnmarshalResponse[map[string]any](t, rr)
	token, _ := (*body)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func authed(t *testing.T, method, path string, body any, token string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, path, body)
	} else {
		req = testutil.NewRequest(t, method, path)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rr := testutil.DoRequest(e.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestSignUp_ReturnsCreatedUser(t *testing.T) {
	e := newEnv(t)
	rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup",
		map[string]string{"email": "user@example.com", "password": "secret1"}))

	testutil.AssertStatus(t, rr, http.StatusCreated)
	body := testutil.UnmarshalResponse[struct {
		Message string           `json:"message"`
		User    domain.Principal `json:"user"`
	}](t, rr)
	assert.Equal(t, "Account created successfully. Please sign in.", body.Message)
	assert.Equal(t, "user@example.com", body.User.Email)
	assert.NotEmpty(t, body.User.ID)
}

func TestSignUp_ValidationErrors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad email", map[string]string{"email": "not-an-email", "password": "secret1"}},
		{"empty email", map[string]string{"email": "", "password": "secret1"}},
		{"empty password", map[string]string{"email": "user@example.com", "password": ""}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup", tc.body))
			testutil.AssertStatus(t, rr, http.StatusBadRequest)
			testutil.AssertErrorCode(t, rr, string(apierrors.CodeInvalidInput))
		})
	}
}

func TestSignUp_DuplicateEmailConflict(t *testing.T) {
	e := newEnv(t)
	creds := map[string]string{"email": "user@example.com", "password": "secret1"}

	rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup", creds))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup", creds))
	testutil.AssertStatus(t, rr, http.StatusConflict)
	testutil.AssertErrorCode(t, rr, string(apierrors.CodeEmailInUse))
}

func TestSignIn_WrongPasswordUnauthorized(t *testing.T) {
	e := newEnv(t)
	rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup",
		map[string]string{"email": "user@example.com", "password": "secret1"}))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signin",
		map[string]string{"email": "user@example.com", "password": "wrong-1"}))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, rr, string(apierrors.CodeWrongPassword))
}

func TestSignIn_UnknownEmailNotFound(t *testing.T) {
	e := newEnv(t)
	rr := testutil.DoRequest(e.router, testutil.NewJSONRequest(t, http.MethodPost, "/auth/signin",
		map[string]string{"email": "nobody@example.com", "password": "secret1"}))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	testutil.AssertErrorCode(t, rr, string(apierrors.CodeUserNotFound))
}

func TestProtectedRoutes_RequireAuth(t *testing.T) {
	e := newEnv(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/me"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/products"},
		{http.MethodPost, "/api/products"},
		{http.MethodGet, "/api/sales"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodPost, "/auth/signout"},
	}
	for _, tc := range paths {
		rr := testutil.DoRequest(e.router, testutil.NewRequest(t, tc.method, tc.path))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	}
}

func TestProtectedRoutes_RejectBadToken(t *testing.T) {
	e := newEnv(t)
	req := testutil.NewRequest(t, http.MethodGet, "/api/me")
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := testutil.DoRequest(e.router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestProfile(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	rr := testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/me", nil, token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	principal := testutil.UnmarshalResponse[domain.Principal](t, rr)
	assert.Equal(t, "user@example.com", principal.Email)
}

func TestProductLifecycle(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	input := map[string]string{"name": "Widget", "category": "Hardware", "price": "10", "quantity": "3"}
	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/products", input, token))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[productView](t, rr)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, "Low Stock", created.Status)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/products", nil, token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	listed := testutil.UnmarshalResponse[[]productView](t, rr)
	require.Len(t, *listed, 1)

	update := map[string]string{"name": "Widget", "category": "Hardware", "price": "10", "quantity": "20"}
	rr = testutil.DoRequest(e.router, authed(t, http.MethodPut, "/api/products/"+created.ID, update, token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	updated := testutil.UnmarshalResponse[productView](t, rr)
	assert.Equal(t, 20, updated.Quantity)
	assert.Equal(t, "In Stock", updated.Status)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodDelete, "/api/products/"+created.ID, nil, token))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/products", nil, token))
	listed = testutil.UnmarshalResponse[[]productView](t, rr)
	assert.Empty(t, *listed)
}

func TestListProducts_QueryFilter(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	for _, p := range []map[string]string{
		{"name": "Hammer", "category": "Tools", "price": "15", "quantity": "10"},
		{"name": "Notebook", "category": "Stationery", "price": "3", "quantity": "40"},
	} {
		rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/products", p, token))
		testutil.AssertStatus(t, rr, http.StatusCreated)
	}

	rr := testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/products?q=tool", nil, token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	listed := testutil.UnmarshalResponse[[]productView](t, rr)
	require.Len(t, *listed, 1)
	assert.Equal(t, "Hammer", (*listed)[0].Name)
}

func TestCreateProduct_ValidationMessagePassthrough(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	input := map[string]string{"name": "", "category": "Hardware", "price": "10", "quantity": "3"}
	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/products", input, token))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	body := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, "All fields are required", (*body)["message"])
}

func TestRecordSale_EndToEnd(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	input := map[string]string{"name": "Widget", "category": "Hardware", "price": "10", "quantity": "8"}
	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/products", input, token))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[productView](t, rr)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/sales",
		map[string]any{"productId": created.ID, "quantity": 3}, token))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	sale := testutil.UnmarshalResponse[domain.Sale](t, rr)
	assert.Equal(t, "Widget", sale.ProductName)
	assert.Equal(t, "Completed", sale.Status)
	require.NotNil(t, sale.Amount)
	assert.Equal(t, 30.0, *sale.Amount)

	// Quantity posted as a string works too.
	rr = testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/sales",
		map[string]any{"productId": created.ID, "quantity": "2"}, token))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/sales", nil, token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	sales := testutil.UnmarshalResponse[[]domain.Sale](t, rr)
	assert.Len(t, *sales, 2)
}

func TestRecordSale_Oversell(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	input := map[string]string{"name": "Widget", "category": "Hardware", "price": "10", "quantity": "1"}
	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/products", input, token))
	created := testutil.UnmarshalResponse[productView](t, rr)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/sales",
		map[string]any{"productId": created.ID, "quantity": 5}, token))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, string(apierrors.CodeInsufficientStock))

	body := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, "Not enough stock", (*body)["message"])
}

func TestRecordSale_BadRequests(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/sales",
		map[string]any{"quantity": 1}, token))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/sales",
		map[string]any{"productId": "p1", "quantity": "three"}, token))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestDashboardEndpoint(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	input := map[string]string{"name": "Widget", "category": "Hardware", "price": "10", "quantity": "8"}
	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/products", input, token))
	created := testutil.UnmarshalResponse[productView](t, rr)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/sales",
		map[string]any{"productId": created.ID, "quantity": 2}, token))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/dashboard", nil, token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	dashboard := testutil.UnmarshalResponse[inventory.Dashboard](t, rr)
	assert.Equal(t, 20.0, dashboard.TotalRevenue)
	assert.Equal(t, 1, dashboard.TodayOrders)
	assert.Equal(t, 1, dashboard.ProductCount)
	assert.Equal(t, 1, dashboard.SaleCount)
}

func TestNotificationsFeed(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	input := map[string]string{"name": "Widget", "category": "Hardware", "price": "10", "quantity": "3"}
	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/api/products", input, token))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/notifications", nil, token))
	testutil.AssertStatus(t, rr, http.StatusOK)
	notifications := testutil.UnmarshalResponse[[]domain.Notification](t, rr)
	require.Len(t, *notifications, 1)
	assert.Equal(t, `Product "Widget" added successfully`, (*notifications)[0].Message)
}

func TestSignOut_RevokesToken(t *testing.T) {
	e := newEnv(t)
	token := e.signUpAndIn(t, "user@example.com")

	rr := testutil.DoRequest(e.router, authed(t, http.MethodPost, "/auth/signout", nil, token))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	// The token still parses, but its session is gone.
	rr = testutil.DoRequest(e.router, authed(t, http.MethodGet, "/api/me", nil, token))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}
