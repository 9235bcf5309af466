package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated         prometheus.Counter
	ProductsCreated      prometheus.Counter
	SalesRecorded        prometheus.Counter
	NotificationsEmitted *prometheus.CounterVec
	FetchDuration        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockdeck_users_created_total",
			Help: "Total number of users created in the system",
		}),
		ProductsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockdeck_products_created_total",
			Help: "Total number of products created",
		}),
		SalesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockdeck_sales_recorded_total",
			Help: "Total number of sales recorded",
		}),
		NotificationsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stockdeck_notifications_emitted_total",
			Help: "Total number of notifications emitted, by type",
		}, []string{"type"}),
		FetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockdeck_owner_fetch_duration_seconds",
			Help:    "Latency of owner-scoped collection fetches",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection"}),
	}
}

// IncrementUsersCreated increments the users created counter by 1.
func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

// IncrementProductsCreated increments the products created counter by 1.
func (m *Metrics) IncrementProductsCreated() {
	if m == nil {
		return
	}
	m.ProductsCreated.Inc()
}

// IncrementSalesRecorded increments the sales recorded counter by 1.
func (m *Metrics) IncrementSalesRecorded() {
	if m == nil {
		return
	}
	m.SalesRecorded.Inc()
}

// ObserveFetch records one owner-scoped fetch for a collection.
func (m *Metrics) ObserveFetch(collection string, seconds float64) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(collection).Observe(seconds)
}

// IncrementNotifications records one emitted notification of the given type.
func (m *Metrics) IncrementNotifications(notifType string) {
	if m == nil {
		return
	}
	m.NotificationsEmitted.WithLabelValues(notifType).Inc()
}
