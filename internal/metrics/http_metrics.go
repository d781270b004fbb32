package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics — метрики входящих HTTP-запросов.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics регистрирует HTTP-метрики в registerer.
func NewHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	return &HTTPMetrics{
		requests: register(registerer, "orders_admin_http_requests_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_admin_http_requests_total",
			Help: "Total number of HTTP requests grouped by method, route and status code.",
		}, []string{"method", "route", "code"})),
		duration: register(registerer, "orders_admin_http_request_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "orders_admin_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})),
	}
}

// Observe записывает один обработанный запрос. route — шаблон маршрута, а не фактический путь.
func (m *HTTPMetrics) Observe(method, route string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}
