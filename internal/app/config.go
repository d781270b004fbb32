package app

import (
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/admin"
	"github.com/vladislavdragonenkov/orders-admin/internal/messaging/kafka"
)

// Поддерживаемые хранилища заказов.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// KafkaBrokers — список брокеров через запятую; пусто — события только логируются.
	KafkaBrokers       string
	OutboxTopic        string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
	// OutboxMaxAge — возраст backlog, после которого /healthz сообщает degraded.
	OutboxMaxAge time.Duration

	AdminPageSize int
	// Seed добавляет демонстрационные заказы при пустом хранилище.
	Seed bool
}

// DefaultConfig возвращает настройки для локального запуска.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		GRPCAddr:            ":50051",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
		OutboxTopic:         kafka.TopicOrderEvents,
		OutboxPollInterval:  time.Second,
		OutboxBatchSize:     100,
		OutboxMaxAttempts:   3,
		OutboxRetryDelay:    200 * time.Millisecond,
		OutboxMaxAge:        5 * time.Minute,
		AdminPageSize:       admin.DefaultPageSize,
	}
}
