package postgres

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadMigrationsFromFS_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_init.up.sql": {
			Data: []byte("CREATE TABLE test_a (id INT);"),
		},
		"sql/migrations/0001_init.down.sql": {
			Data: []byte("DROP TABLE IF EXISTS test_a;"),
		},
		"sql/migrations/0002_more.up.sql": {
			Data: []byte("CREATE TABLE test_b (id INT);"),
		},
		"sql/migrations/0002_more.down.sql": {
			Data: []byte("DROP TABLE IF EXISTS test_b;"),
		},
	}

	migrations, err := loadMigrationsFromFS(fsys)
	if err != nil {
		t.Fatalf("loadMigrationsFromFS failed: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}

	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Version != 2 || migrations[1].Name != "more" {
		t.Fatalf("unexpected second migration: %+v", migrations[1])
	}
}

func TestLoadMigrationsFromFS_MissingDown(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_init.up.sql": {
			Data: []byte("CREATE TABLE test_a (id INT);"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for missing down migration")
	}
	if !strings.Contains(err.Error(), "both up and down") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadMigrationsFromFS_InvalidFilename(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/not_a_migration.sql": {
			Data: []byte("SELECT 1;"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for invalid migration file name")
	}
}

func TestLoadMigrationsFromFS_EmptyFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_init.up.sql": {
			Data: []byte("   \n"),
		},
		"sql/migrations/0001_init.down.sql": {
			Data: []byte("DROP TABLE IF EXISTS test;"),
		},
	}

	_, err := loadMigrationsFromFS(fsys)
	if err == nil {
		t.Fatal("expected error for empty migration file body")
	}
}

func TestLoadMigrationsFromFS_Embedded(t *testing.T) {
	t.Parallel()

	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		t.Fatalf("load embedded migrations: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 embedded migrations, got %d", len(migrations))
	}
	if migrations[0].Name != "orders" || !strings.Contains(migrations[0].UpSQL, "CREATE TABLE IF NOT EXISTS orders") {
		t.Fatalf("unexpected first migration: %+v", migrations[0])
	}
	if migrations[1].Name != "outbox_messages" {
		t.Fatalf("unexpected second migration: %+v", migrations[1])
	}
}

func TestPlanMigrations(t *testing.T) {
	t.Parallel()

	all := []migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}
	applied := map[int64]bool{1: true}

	up := planMigrations(all, applied, migrationUp, 0)
	if len(up) != 2 || up[0].Version != 2 || up[1].Version != 3 {
		t.Fatalf("unexpected up plan: %+v", up)
	}

	upOne := planMigrations(all, applied, migrationUp, 1)
	if len(upOne) != 1 || upOne[0].Version != 2 {
		t.Fatalf("unexpected limited up plan: %+v", upOne)
	}

	applied = map[int64]bool{1: true, 2: true, 3: true}
	down := planMigrations(all, applied, migrationDown, 2)
	if len(down) != 2 || down[0].Version != 3 || down[1].Version != 2 {
		t.Fatalf("unexpected down plan: %+v", down)
	}

	if plan := planMigrations(all, map[int64]bool{}, migrationDown, 1); len(plan) != 0 {
		t.Fatalf("expected empty down plan on fresh database, got %+v", plan)
	}
}

func TestLoadMigrationsFromFS_NameMismatch(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"sql/migrations/0001_init.up.sql":    {Data: []byte("SELECT 1;")},
		"sql/migrations/0001_other.down.sql": {Data: []byte("SELECT 1;")},
	}

	if _, err := loadMigrationsFromFS(fsys); err == nil || !strings.Contains(err.Error(), "name mismatch") {
		t.Fatalf("expected name mismatch error, got %v", err)
	}
}
