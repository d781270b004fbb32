package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// OutboxTopicPublisher публикует outbox-сообщения в заданный Kafka topic.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
func NewOutboxPublisher(producer *Producer, topic string) domain.OutboxPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{
		producer: producer,
		topic:    topic,
	}
}

type outboxEnvelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

func envelopeOf(event domain.OutboxMessage) outboxEnvelope {
	payload := event.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	return outboxEnvelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       json.RawMessage(payload),
		PublishedAt:   time.Now().UTC(),
	}
}

func messageKey(event domain.OutboxMessage) string {
	if event.AggregateID != "" {
		return event.AggregateID
	}
	return event.ID
}

func (p *OutboxTopicPublisher) Publish(event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka outbox publisher is not initialized")
	}
	return p.producer.PublishEvent(p.topic, messageKey(event), envelopeOf(event))
}

// DLQPublisher отправляет сообщения, исчерпавшие попытки, в dead letter topic.
type DLQPublisher struct {
	producer      *Producer
	topic         string
	originalTopic string
}

// NewDLQPublisher создаёт паблишер для DLQ. originalTopic попадает в заголовки.
func NewDLQPublisher(producer *Producer, topic, originalTopic string) domain.OutboxPublisher {
	if topic == "" {
		topic = TopicDeadLetterQueue
	}
	if originalTopic == "" {
		originalTopic = TopicOrderEvents
	}
	return &DLQPublisher{producer: producer, topic: topic, originalTopic: originalTopic}
}

func (p *DLQPublisher) Publish(event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka dlq publisher is not initialized")
	}

	data, err := json.Marshal(envelopeOf(event))
	if err != nil {
		return fmt.Errorf("marshal dlq envelope: %w", err)
	}

	headers := map[string]string{
		HeaderOriginalTopic: p.originalTopic,
		HeaderFailedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if reason := event.LastError; reason != "" {
		headers[HeaderErrorMessage] = reason
	}

	return p.producer.PublishRaw(p.topic, messageKey(event), data, headers)
}

var (
	_ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
	_ domain.OutboxPublisher = (*DLQPublisher)(nil)
)
