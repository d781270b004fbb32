package app

import (
	"reflect"
	"testing"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/service/outbox"
)

func TestInitKafkaProducer_EmptyBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	for _, brokers := range []string{"", " , ,"} {
		producer, err := initKafkaProducer(brokers, logger)
		if err != nil {
			t.Errorf("expected no error for brokers %q, got %v", brokers, err)
		}
		if producer != nil {
			t.Errorf("expected nil producer for brokers %q", brokers)
		}
	}
}

func TestInitKafkaProducer_InvalidBrokers(t *testing.T) {
	logger := log.WithField("test", "kafka")

	// Используем несуществующий broker
	producer, err := initKafkaProducer("127.0.0.1:1", logger)

	if err == nil {
		t.Error("expected error for invalid brokers")
	}
	if producer != nil {
		t.Error("expected nil producer on error")
	}
}

func TestCloseKafka_NilProducer(_ *testing.T) {
	// Не должно паниковать
	closeKafka(nil, log.WithField("test", "kafka"))
}

func TestSplitBrokers(t *testing.T) {
	got := splitBrokers("broker1:9092, broker2:9092,,broker3:9092 ")
	want := []string{"broker1:9092", "broker2:9092", "broker3:9092"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewOutboxPublishers_WithoutKafka(t *testing.T) {
	publisher, dlq := newOutboxPublishers(nil, "", log.WithField("test", "kafka"))

	if _, ok := publisher.(*outbox.LogPublisher); !ok {
		t.Errorf("expected log publisher without kafka, got %T", publisher)
	}
	if dlq != nil {
		t.Errorf("expected no DLQ publisher without kafka, got %T", dlq)
	}
}
