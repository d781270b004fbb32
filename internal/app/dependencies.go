package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/orders-admin/internal/health"
	"github.com/vladislavdragonenkov/orders-admin/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders-admin/internal/storage/postgres"
)

// runtimeDependencies — хранилища, выбранные конфигурацией.
type runtimeDependencies struct {
	repo           domain.OrderRepository
	outboxRepo     domain.OutboxRepository
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	switch driver {
	case "", StorageDriverMemory:
		logger.Info("using in-memory storage")
		return &runtimeDependencies{
			repo:       memory.NewOrderRepository(),
			outboxRepo: memory.NewOutboxRepository(),
			storageChecker: healthcheck.NewSimpleChecker("storage", func(context.Context) error {
				return nil
			}),
		}, nil

	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, errors.New("postgres dsn is required for postgres storage driver")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}

		logger.Info("using postgres storage")
		return &runtimeDependencies{
			repo:           postgres.NewOrderRepository(store),
			outboxRepo:     postgres.NewOutboxRepository(store),
			storageChecker: healthcheck.NewStorageChecker(store),
			closeFn:        store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func (d *runtimeDependencies) close(logger *log.Entry) {
	if d == nil || d.closeFn == nil {
		return
	}
	if err := d.closeFn(); err != nil {
		logger.WithError(err).Warn("failed to close storage")
	}
}
