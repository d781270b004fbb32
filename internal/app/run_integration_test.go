package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/orders-admin/internal/health"
)

func TestRun_MemoryGracefulShutdown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.MetricsAddr = fmt.Sprintf("127.0.0.1:%d", findFreePort(t))
	cfg.StorageDriver = StorageDriverMemory
	cfg.Seed = true

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond)
		cancel()
	}()

	err := Run(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_InvalidStorageDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "invalid-driver"
	cfg.HTTPAddr = "127.0.0.1:0"
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"

	err := Run(context.Background(), cfg)
	if err == nil || !strings.Contains(err.Error(), "unsupported storage driver") {
		t.Fatalf("expected unsupported storage driver error, got %v", err)
	}
}

func TestInitRuntimeDependencies_PostgresSuccess(t *testing.T) {
	dsn := postgresTestDSNCandidate()
	if dsn == "" {
		t.Skip("postgres dsn is not available")
	}

	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = dsn
	cfg.PostgresAutoMigrate = true

	deps, err := initRuntimeDependencies(context.Background(), cfg, log.WithField("test", "postgres-init"))
	if err != nil {
		t.Skipf("postgres is not available for app integration test: %v", err)
	}
	defer deps.close(log.WithField("test", "postgres-init"))

	if deps.repo == nil || deps.outboxRepo == nil {
		t.Fatalf("postgres dependencies must be initialized: %+v", deps)
	}
	if deps.closeFn == nil {
		t.Fatal("expected close func for postgres")
	}
	check := deps.storageChecker.Check(context.Background())
	if check.Status != healthcheck.StatusHealthy {
		t.Fatalf("expected healthy storage checker, got %+v", check)
	}
}

func postgresTestDSNCandidate() string {
	return strings.TrimSpace(os.Getenv("OMS_POSTGRES_TEST_DSN"))
}
