package app

import (
	"context"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/orders-admin/internal/health"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverMemory,
	}, log.WithField("test", "memory-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(memory) failed: %v", err)
	}
	if deps.repo == nil {
		t.Fatal("repo should not be nil for memory storage")
	}
	if deps.outboxRepo == nil {
		t.Fatal("outboxRepo should not be nil for memory storage")
	}
	if deps.closeFn != nil {
		t.Fatal("memory storage has nothing to close")
	}
	if check := deps.storageChecker.Check(context.Background()); check.Status != healthcheck.StatusHealthy {
		t.Fatalf("expected healthy memory storage, got %+v", check)
	}
}

func TestInitRuntimeDependencies_EmptyDriverMeansMemory(t *testing.T) {
	t.Parallel()

	deps, err := initRuntimeDependencies(context.Background(), Config{}, log.WithField("test", "default-storage"))
	if err != nil {
		t.Fatalf("initRuntimeDependencies(\"\") failed: %v", err)
	}
	if deps.repo == nil {
		t.Fatal("repo should not be nil")
	}
}

func TestInitRuntimeDependencies_IndependentInstances(t *testing.T) {
	t.Parallel()

	logger := log.WithField("test", "independent")
	deps1, err := initRuntimeDependencies(context.Background(), Config{}, logger)
	if err != nil {
		t.Fatal(err)
	}
	deps2, err := initRuntimeDependencies(context.Background(), Config{}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if deps1.repo == deps2.repo {
		t.Error("repo instances should be independent")
	}
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: StorageDriverPostgres,
	}, log.WithField("test", "postgres-missing-dsn"))
	if err == nil {
		t.Fatal("expected error when postgres driver is selected without DSN")
	}
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := initRuntimeDependencies(context.Background(), Config{
		StorageDriver: "sqlite",
	}, log.WithField("test", "unsupported-driver"))
	if err == nil || !strings.Contains(err.Error(), "unsupported storage driver") {
		t.Fatalf("expected unsupported storage driver error, got %v", err)
	}
}
