// Package orders — прикладной сервис заказов: валидация, хранилище, события outbox и метрики.
package orders

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders-admin/internal/metrics"
)

// Service реализует операции над заказами поверх репозитория.
type Service struct {
	repo    domain.OrderRepository
	outbox  domain.OutboxRepository
	metrics *metrics.OrderMetrics
	logger  *log.Entry
	now     func() time.Time
}

// Option настраивает Service.
type Option func(*Service)

// WithOutbox включает публикацию событий через transactional outbox.
func WithOutbox(outbox domain.OutboxRepository) Option {
	return func(s *Service) { s.outbox = outbox }
}

// WithMetrics подключает метрики операций.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService создаёт сервис заказов.
func NewService(repo domain.OrderRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: log.WithFields(log.Fields{"component": "order-service", "layer": "service"}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List возвращает заказы по фильтру в порядке возрастания id.
func (s *Service) List(ctx context.Context, filter domain.OrderFilter) (orders []domain.Order, err error) {
	defer s.observe(metrics.OpList, time.Now(), &err)

	orders, err = s.repo.List(ctx, filter.Normalize())
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Create проверяет поля и сохраняет новый заказ.
func (s *Service) Create(ctx context.Context, fields domain.OrderFields) (order domain.Order, err error) {
	defer s.observe(metrics.OpCreate, time.Now(), &err)

	fields, err = validate(fields)
	if err != nil {
		return domain.Order{}, err
	}

	order, err = s.repo.Create(ctx, fields, s.now().UTC())
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.logger.WithFields(log.Fields{"order_id": order.ID, "customer": order.Customer}).Info("order created")
	s.enqueue(kafka.EventTypeOrderCreated, order)
	return order, nil
}

// Update полностью заменяет изменяемые поля заказа.
func (s *Service) Update(ctx context.Context, id int64, fields domain.OrderFields) (order domain.Order, err error) {
	defer s.observe(metrics.OpUpdate, time.Now(), &err)

	if id <= 0 {
		return domain.Order{}, fmt.Errorf("update order %d: %w", id, domain.ErrOrderNotFound)
	}
	fields, err = validate(fields)
	if err != nil {
		return domain.Order{}, err
	}

	order, err = s.repo.Update(ctx, id, fields)
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order %d: %w", id, err)
	}

	s.logger.WithFields(log.Fields{"order_id": order.ID, "status": order.Status}).Info("order updated")
	s.enqueue(kafka.EventTypeOrderUpdated, order)
	return order, nil
}

// Delete удаляет заказ и возвращает удалённую запись.
func (s *Service) Delete(ctx context.Context, id int64) (order domain.Order, err error) {
	defer s.observe(metrics.OpDelete, time.Now(), &err)

	if id <= 0 {
		return domain.Order{}, fmt.Errorf("delete order %d: %w", id, domain.ErrOrderNotFound)
	}

	order, err = s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("delete order %d: %w", id, err)
	}

	s.logger.WithField("order_id", order.ID).Info("order deleted")
	s.enqueue(kafka.EventTypeOrderDeleted, order)
	return order, nil
}

// validate нормализует поля и собирает все замечания в одну ошибку класса ErrValidation.
func validate(fields domain.OrderFields) (domain.OrderFields, error) {
	fields = fields.Normalize()
	if errs := fields.Validate(); len(errs) > 0 {
		return fields, &ValidationError{Errors: errs}
	}
	return fields, nil
}

// enqueue кладёт событие в outbox. Ошибка не отменяет уже выполненную запись.
func (s *Service) enqueue(eventType kafka.EventType, order domain.Order) {
	if s.outbox == nil {
		return
	}

	logger := s.logger.WithFields(log.Fields{"order_id": order.ID, "event": eventType})
	msg, err := kafka.NewOrderEvent(eventType, order).OutboxMessage()
	if err != nil {
		logger.WithError(err).Error("encode order event failed")
		return
	}
	if _, err := s.outbox.Enqueue(msg); err != nil {
		logger.WithError(err).Error("enqueue event failed")
		return
	}
	s.metrics.RecordOutboxEvent()
}

func (s *Service) observe(op string, started time.Time, err *error) {
	s.metrics.RecordOperation(op, *err, time.Since(started))
}
