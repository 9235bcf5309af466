package auth

import (
	"context"

	"stockdeck/internal/domain"
	"stockdeck/pkg/apierrors"
)

// ErrNotFound keeps storage-specific 404s consistent across user/session
// implementations.
var ErrNotFound = apierrors.New(apierrors.CodeNotFound, "record not found")

// UserStore persists identity records. Save is an upsert so last-login
// updates reuse the same path as creation.
type UserStore interface {
	Save(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// SessionStore tracks live sessions. A deleted or expired session makes the
// corresponding access token unusable.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
