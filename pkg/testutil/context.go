package testutil

import (
	"net/http"

	"stockdeck/pkg/requestcontext"
)

// WithAuth adds user and session IDs to the request context, simulating what
// the auth middleware does for authenticated requests.
func WithAuth(req *http.Request, userID, sessionID string) *http.Request {
	ctx := req.Context()
	if userID != "" {
		ctx = requestcontext.WithUserID(ctx, userID)
	}
	if sessionID != "" {
		ctx = requestcontext.WithSessionID(ctx, sessionID)
	}
	return req.WithContext(ctx)
}
