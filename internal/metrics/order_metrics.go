package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// Операции над заказами, используемые в лейбле op.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// OrderMetrics содержит метрики операций над заказами.
type OrderMetrics struct {
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	outboxEvents prometheus.Counter
}

// NewOrderMetrics регистрирует метрики заказов в registerer.
func NewOrderMetrics(registerer prometheus.Registerer) *OrderMetrics {
	return &OrderMetrics{
		operations: register(registerer, "orders_admin_operations_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_admin_operations_total",
			Help: "Total number of order operations grouped by operation and result.",
		}, []string{"op", "result"})),
		duration: register(registerer, "orders_admin_operation_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orders_admin_operation_duration_seconds",
			Help:    "Duration of order operations in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"op"})),
		outboxEvents: register(registerer, "orders_admin_outbox_events_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_admin_outbox_events_total",
			Help: "Total number of order events enqueued to the outbox.",
		})),
	}
}

// RecordOperation фиксирует результат и длительность операции.
func (m *OrderMetrics) RecordOperation(op string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultOf(err)).Inc()
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordOutboxEvent увеличивает счётчик событий outbox.
func (m *OrderMetrics) RecordOutboxEvent() {
	if m == nil {
		return
	}
	m.outboxEvents.Inc()
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}
