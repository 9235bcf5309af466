// Package notify writes and reads the owner-scoped notification feed.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"stockdeck/internal/domain"
	"stockdeck/internal/platform/metrics"
	"stockdeck/pkg/requestcontext"
)

// Emitter creates notifications for the current principal. With no principal
// it skips the write silently; callers never have to guard the call.
type Emitter struct {
	store   Store
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewEmitter(store Store, m *metrics.Metrics, logger *slog.Logger) *Emitter {
	return &Emitter{store: store, metrics: m, logger: logger}
}

// Notify writes one notification scoped to ownerID. Empty owner is a logged
// no-op, never an error. There is no retry; the write's own guarantee is the
// only delivery guarantee.
func (e *Emitter) Notify(ctx context.Context, ownerID, message string, notifType domain.NotificationType) error {
	if ownerID == "" {
		e.logger.WarnContext(ctx, "notification not created: no principal", "message", message)
		return nil
	}
	if notifType == "" {
		notifType = domain.NotificationInfo
	}

	notification := domain.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      notifType,
		OwnerID:   ownerID,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := e.store.Insert(ctx, notification); err != nil {
		return err
	}
	e.metrics.IncrementNotifications(string(notifType))
	return nil
}

// List returns the owner's notifications.
func (e *Emitter) List(ctx context.Context, ownerID string) ([]domain.Notification, error) {
	return e.store.ListByOwner(ctx, ownerID)
}
