package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OutboxMetrics — метрики outbox worker.
type OutboxMetrics struct {
	publishAttempts *prometheus.CounterVec
	pending         prometheus.Gauge
	oldestAge       prometheus.Gauge
}

// NewOutboxMetrics регистрирует метрики outbox в registerer.
func NewOutboxMetrics(registerer prometheus.Registerer) *OutboxMetrics {
	return &OutboxMetrics{
		publishAttempts: register(registerer, "orders_admin_outbox_publish_attempts_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_admin_outbox_publish_attempts_total",
			Help: "Total number of outbox publish attempts grouped by result.",
		}, []string{"result"})),
		pending: register(registerer, "orders_admin_outbox_pending_records", prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orders_admin_outbox_pending_records",
			Help: "Current number of pending records in transactional outbox.",
		})),
		oldestAge: register(registerer, "orders_admin_outbox_oldest_pending_age_seconds", prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orders_admin_outbox_oldest_pending_age_seconds",
			Help: "Age in seconds of the oldest pending outbox record.",
		})),
	}
}

// RecordPublish увеличивает счётчик попыток с указанным результатом.
func (m *OutboxMetrics) RecordPublish(result string) {
	if m == nil {
		return
	}
	m.publishAttempts.WithLabelValues(result).Inc()
}

// SetBacklog обновляет размер backlog и возраст самой старой записи.
func (m *OutboxMetrics) SetBacklog(pending int, oldestAge time.Duration) {
	if m == nil {
		return
	}
	if oldestAge < 0 {
		oldestAge = 0
	}
	m.pending.Set(float64(pending))
	m.oldestAge.Set(oldestAge.Seconds())
}
