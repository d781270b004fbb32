// Package httpapi — REST API заказов на gin.
package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/metrics"
)

// OrderService — операции, которые обслуживает API.
type OrderService interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	Create(ctx context.Context, fields domain.OrderFields) (domain.Order, error)
	Update(ctx context.Context, id int64, fields domain.OrderFields) (domain.Order, error)
	Delete(ctx context.Context, id int64) (domain.Order, error)
}

// Server — HTTP-сервер REST API.
type Server struct {
	engine *gin.Engine
	orders OrderService
	logger *log.Entry
}

// Option настраивает Server.
type Option func(*options)

type options struct {
	logger  *log.Entry
	metrics *metrics.HTTPMetrics
}

// WithLogger задаёт logger для access-лога и ошибок.
func WithLogger(logger *log.Entry) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics включает HTTP-метрики.
func WithMetrics(m *metrics.HTTPMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewServer создаёт gin-движок с маршрутами /orders и /api/orders.
func NewServer(orders OrderService, opts ...Option) *Server {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.WithFields(log.Fields{"component": "http-api", "layer": "transport"})
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(o.logger), Metrics(o.metrics), gin.Recovery())

	s := &Server{engine: r, orders: orders, logger: o.logger}
	s.registerRoutes()
	return s
}

// Engine возвращает gin-движок; на нём же монтируется веб-интерфейс.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	for _, prefix := range []string{"/orders", "/api/orders"} {
		orders := s.engine.Group(prefix)
		orders.GET("", s.listOrders)
		orders.POST("", s.createOrder)
		orders.PUT("/:id", s.updateOrder)
		orders.DELETE("/:id", s.deleteOrder)
	}
}
