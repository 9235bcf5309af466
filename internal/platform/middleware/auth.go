package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"stockdeck/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT access tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	UserID    string
	SessionID string
}

// SessionChecker reports whether a session is still live. Tokens for revoked
// sessions are rejected even if the JWT itself has not expired.
type SessionChecker interface {
	SessionExists(ctx context.Context, sessionID string) (bool, error)
}

// RequireAuth validates the Bearer token, checks the session is still live,
// and stamps user ID and session ID into the context. Unauthenticated
// requests to protected routes get a 401 JSON envelope.
func RequireAuth(validator JWTValidator, sessions SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token", "path", r.URL.Path)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token", "error", err, "path", r.URL.Path)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			live, err := sessions.SessionExists(ctx, claims.SessionID)
			if err != nil {
				logger.ErrorContext(ctx, "session liveness check failed", "error", err)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}
			if !live {
				logger.WarnContext(ctx, "unauthorized access - revoked session", "session_id", claims.SessionID)
				writeUnauthorized(w, "Session has been signed out")
				return
			}

			ctx = requestcontext.WithUserID(ctx, claims.UserID)
			ctx = requestcontext.WithSessionID(ctx, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
