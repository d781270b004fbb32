package outbox

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

// LogPublisher пишет события в лог. Используется, когда брокер не настроен.
type LogPublisher struct {
	logger *log.Entry
}

// NewLogPublisher создаёт publisher, который только логирует события.
func NewLogPublisher(logger *log.Entry) *LogPublisher {
	if logger == nil {
		logger = log.WithField("component", "outbox-log-publisher")
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(event domain.OutboxMessage) error {
	entry := p.logger.WithFields(log.Fields{
		"outbox_id":  event.ID,
		"event_type": event.EventType,
		"order_id":   event.AggregateID,
	})
	if event.LastError != "" {
		entry = entry.WithField("last_error", event.LastError)
	}
	entry.Info(string(event.Payload))
	return nil
}

var _ domain.OutboxPublisher = (*LogPublisher)(nil)
