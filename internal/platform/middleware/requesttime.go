package middleware

import (
	"net/http"
	"time"

	"stockdeck/pkg/requestcontext"
)

// RequestTime stamps a single observation of the clock into the request
// context so every computation in one request agrees on "now".
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
