package app

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	"github.com/vladislavdragonenkov/orders-admin/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders-admin/internal/service/outbox"
)

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Возвращает nil, nil если brokers пустой.
func initKafkaProducer(brokers string, logger *log.Entry) (*kafka.Producer, error) {
	brokerList := splitBrokers(brokers)
	if len(brokerList) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokerList)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, err
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer, nil
}

// newOutboxPublishers выбирает публикаторов для воркера outbox.
// Без Kafka события пишутся в лог, DLQ не используется.
func newOutboxPublishers(producer *kafka.Producer, topic string, logger *log.Entry) (publisher, dlq domain.OutboxPublisher) {
	if producer == nil {
		return outbox.NewLogPublisher(logger.WithField("layer", "outbox")), nil
	}
	if topic == "" {
		topic = kafka.TopicOrderEvents
	}
	return kafka.NewOutboxPublisher(producer, topic), kafka.NewDLQPublisher(producer, kafka.TopicDeadLetterQueue, topic)
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
