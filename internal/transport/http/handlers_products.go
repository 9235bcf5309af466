package httptransport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"stockdeck/internal/domain"
	"stockdeck/internal/inventory"
	"stockdeck/internal/report"
	"stockdeck/pkg/apierrors"
	"stockdeck/pkg/requestcontext"
)

// productView decorates a product with its derived stock status label.
type productView struct {
	domain.Product
	Status string `json:"status"`
}

func toProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, productView{Product: p, Status: report.StockStatus(p.Quantity)})
	}
	return out
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	ownerID := requestcontext.UserID(r.Context())
	products, err := h.inventory.Products(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	// Optional name/category substring filter, matching the catalog search.
	if q := strings.ToLower(r.URL.Query().Get("q")); q != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	writeJSON(w, http.StatusOK, toProductViews(products))
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var in inventory.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apierrors.New(apierrors.CodeInvalidInput, "invalid request body"))
		return
	}

	product, err := h.inventory.CreateProduct(r.Context(), requestcontext.UserID(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, productView{Product: product, Status: report.StockStatus(product.Quantity)})
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in inventory.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apierrors.New(apierrors.CodeInvalidInput, "invalid request body"))
		return
	}

	product, err := h.inventory.UpdateProduct(r.Context(), requestcontext.UserID(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productView{Product: product, Status: report.StockStatus(product.Quantity)})
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.inventory.DeleteProduct(r.Context(), requestcontext.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
