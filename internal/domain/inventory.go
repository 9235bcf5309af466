package domain

import (
	"encoding/json"
	"time"
)

// Product is an owner-scoped catalog record. Quantity and price are validated
// on every write: quantity >= 0, price > 0.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	OwnerID   string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sale is an immutable owner-scoped record of a completed sale. Its field set
// deliberately mirrors the documents accumulated by older code paths: revenue
// may live in Amount, TotalAmount, or only in Price*Quantity, and the
// timestamp may sit in Date or CreatedAt under any DocTime encoding. The
// report package owns the fallback chains; nothing here may "clean up" the
// drift.
type Sale struct {
	ID          string      `json:"id"`
	OrderID     string      `json:"orderId"`
	ProductName string      `json:"productName"`
	Quantity    json.Number `json:"quantity,omitempty"`
	Price       json.Number `json:"price,omitempty"`
	Amount      *float64    `json:"amount,omitempty"`
	TotalAmount *float64    `json:"totalAmount,omitempty"`
	Date        DocTime     `json:"date,omitzero"`
	CreatedAt   DocTime     `json:"createdAt,omitzero"`
	Status      string      `json:"status"`
	OwnerID     string      `json:"userId"`
}

// NotificationType styles a notification in the feed. The set is open; the
// three values below are the ones current flows emit.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationInfo    NotificationType = "info"
)

// Notification is an owner-scoped feed entry. Written once, never updated.
type Notification struct {
	ID        string           `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	OwnerID   string           `json:"userId"`
	CreatedAt time.Time        `json:"createdAt"`
}

// SaleStatusCompleted is the only status current flows write.
const SaleStatusCompleted = "Completed"
