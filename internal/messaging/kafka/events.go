package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	EventTypeOrderCreated EventType = "order.created"
	EventTypeOrderUpdated EventType = "order.updated"
	EventTypeOrderDeleted EventType = "order.deleted"
)

// AggregateOrder — тип агрегата в outbox.
const AggregateOrder = "order"

// Topics для Kafka
const (
	TopicOrderEvents     = "orders.events"
	TopicDeadLetterQueue = "orders.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers для DLQ
const (
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)

// OrderEvent представляет событие изменения заказа
type OrderEvent struct {
	EventType EventType    `json:"event_type"`
	OrderID   int64        `json:"order_id"`
	Order     domain.Order `json:"order"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, order domain.Order) *OrderEvent {
	return &OrderEvent{
		EventType: eventType,
		OrderID:   order.ID,
		Order:     order,
		Timestamp: time.Now().UTC(),
	}
}

// OutboxMessage упаковывает событие в сообщение для transactional outbox.
func (e *OrderEvent) OutboxMessage() (domain.OutboxMessage, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal %s event: %w", e.EventType, err)
	}
	return domain.OutboxMessage{
		AggregateType: AggregateOrder,
		AggregateID:   strconv.FormatInt(e.OrderID, 10),
		EventType:     string(e.EventType),
		Payload:       payload,
	}, nil
}
