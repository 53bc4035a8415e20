package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records the order engine counters.
type OrderMetrics struct {
	created        *prometheus.CounterVec
	cancelled      prometheus.Counter
	stockConflicts *prometheus.CounterVec
	createDuration prometheus.Histogram
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders successfully created, by delivery method.",
	}, []string{"delivery_method"})
	cancelled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Orders cancelled with stock restored.",
	})
	stockConflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_stock_conflicts_total",
		Help: "Order creations rejected for insufficient stock, by product.",
	}, []string{"product_id"})
	createDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_create_duration_seconds",
		Help:    "Duration of order creation in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(created, cancelled, stockConflicts, createDuration)
	return &OrderMetrics{
		created:        created,
		cancelled:      cancelled,
		stockConflicts: stockConflicts,
		createDuration: createDuration,
	}
}

// IncCreated increments the created counter for the delivery method.
func (m *OrderMetrics) IncCreated(deliveryMethod string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(deliveryMethod)).Inc()
}

// IncCancelled increments the cancelled counter.
func (m *OrderMetrics) IncCancelled() {
	if m == nil || m.cancelled == nil {
		return
	}
	m.cancelled.Inc()
}

// IncStockConflict increments the insufficient-stock counter for a product.
func (m *OrderMetrics) IncStockConflict(productID string) {
	if m == nil || m.stockConflicts == nil {
		return
	}
	m.stockConflicts.WithLabelValues(normalizeLabel(productID)).Inc()
}

// ObserveCreateDuration records the latency of one create call.
func (m *OrderMetrics) ObserveCreateDuration(duration time.Duration) {
	if m == nil || m.createDuration == nil {
		return
	}
	m.createDuration.Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
