package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/orders-admin/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
)

// migrator — операции со схемой, которые нужны CLI.
type migrator interface {
	MigrateUp(ctx context.Context, steps int) error
	MigrateDown(ctx context.Context, steps int) error
	MigrationStatus(ctx context.Context) (int64, int, error)
}

func main() {
	var (
		direction string
		steps     int
		dsn       string
	)

	flag.StringVar(&direction, "direction", "up", "migration direction: up|down|status")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: OMS_POSTGRES_DSN)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("OMS_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("OMS_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	if err := run(ctx, store, direction, steps, os.Stdout); err != nil {
		fail("%v", err)
	}
}

// run выполняет одну команду и печатает итоговую версию схемы.
func run(ctx context.Context, m migrator, direction string, steps int, out io.Writer) error {
	direction = strings.ToLower(strings.TrimSpace(direction))

	switch direction {
	case "up":
		if err := m.MigrateUp(ctx, steps); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := m.MigrateDown(ctx, steps); err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
	case "status":
	default:
		return fmt.Errorf("unsupported direction: %s (use up|down|status)", direction)
	}

	version, count, err := m.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}

	if direction == "status" {
		_, _ = fmt.Fprintf(out, "migration status: version=%d applied=%d\n", version, count)
		return nil
	}
	_, _ = fmt.Fprintf(out, "migrate %s ok: version=%d applied=%d\n", direction, version, count)
	return nil
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
