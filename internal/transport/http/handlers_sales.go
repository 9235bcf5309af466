package httptransport

import (
	"encoding/json"
	"net/http"

	"stockdeck/pkg/apierrors"
	"stockdeck/pkg/requestcontext"
)

type recordSaleRequest struct {
	ProductID string `json:"productId"`
	// The form posts quantity as a string; tolerate both encodings.
	Quantity json.Number `json:"quantity"`
}

func (h *Handler) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.inventory.Sales(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *Handler) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.New(apierrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if req.ProductID == "" {
		writeError(w, apierrors.New(apierrors.CodeInvalidInput, "productId is required"))
		return
	}
	quantity, err := req.Quantity.Int64()
	if err != nil {
		writeError(w, apierrors.New(apierrors.CodeInvalidInput, "quantity must be a number"))
		return
	}

	sale, err := h.inventory.RecordSale(r.Context(), requestcontext.UserID(r.Context()), req.ProductID, int(quantity))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.inventory.BuildDashboard(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.inventory.Notifications(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}
