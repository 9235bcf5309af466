package httptransport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asaskevich/govalidator"

	"stockdeck/pkg/apierrors"
	"stockdeck/pkg/requestcontext"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateCredentials(req credentialsRequest) error {
	if !govalidator.StringLength(req.Email, "1", "255") || !govalidator.IsEmail(req.Email) {
		return apierrors.New(apierrors.CodeInvalidInput, "invalid email")
	}
	if req.Password == "" {
		return apierrors.New(apierrors.CodeInvalidInput, "password is required")
	}
	return nil
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.New(apierrors.CodeInvalidInput, "invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := validateCredentials(req); err != nil {
		writeError(w, err)
		return
	}

	principal, err := h.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Account created successfully. Please sign in.",
		"user":    principal,
	})
}

func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.New(apierrors.CodeInvalidInput, "invalid request body"))
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := validateCredentials(req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": result.AccessToken,
		"token_type":   "Bearer",
		"user":         result.Principal,
	})
}

func (h *Handler) handleSignOut(w http.ResponseWriter, r *http.Request) {
	sessionID := requestcontext.SessionID(r.Context())
	if err := h.auth.SignOut(r.Context(), sessionID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := h.auth.Profile(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, principal)
}
