// Package httptransport is the thin HTTP layer. Handlers decode, validate,
// delegate to services, and encode; business logic stays out of this package.
package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stockdeck/internal/auth"
	"stockdeck/internal/inventory"
	"stockdeck/internal/platform/middleware"
	"stockdeck/pkg/apierrors"
)

// Handler bundles the domain services behind the routes.
type Handler struct {
	auth      *auth.Service
	inventory *inventory.Service
	logger    *slog.Logger
}

func NewHandler(authService *auth.Service, inventoryService *inventory.Service, logger *slog.Logger) *Handler {
	return &Handler{
		auth:      authService,
		inventory: inventoryService,
		logger:    logger,
	}
}

// NewRouter wires all public endpoints. Everything under /api plus sign-out
// requires a live session; unauthenticated requests there get the 401
// envelope, the API equivalent of the old redirect-to-root.
func NewRouter(h *Handler, validator middleware.JWTValidator) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))
	r.Use(middleware.RequestTime)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/signup", h.handleSignUp)
	r.Post("/auth/signin", h.handleSignIn)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(validator, h.auth, h.logger))

		r.Post("/auth/signout", h.handleSignOut)

		r.Route("/api", func(r chi.Router) {
			r.Get("/me", h.handleProfile)
			r.Get("/dashboard", h.handleDashboard)
			r.Get("/notifications", h.handleListNotifications)

			r.Get("/products", h.handleListProducts)
			r.Post("/products", h.handleCreateProduct)
			r.Put("/products/{id}", h.handleUpdateProduct)
			r.Delete("/products/{id}", h.handleDeleteProduct)

			r.Get("/sales", h.handleListSales)
			r.Post("/sales", h.handleRecordSale)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := apierrors.CodeOf(err)
	writeJSON(w, apierrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": apierrors.MessageOf(err),
	})
}
