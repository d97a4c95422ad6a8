package postgres

import (
	"context"
	"testing"
	"time"
)

func TestMigrator_PostgresLifecycle(t *testing.T) {
	store := openRawPostgresStoreForIntegrationTest(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := store.MigrateDown(ctx, 100); err != nil {
		t.Fatalf("migrate down reset: %v", err)
	}
	assertMigrationStatus(t, store, 0, 0)

	applied, err := store.Migrate(ctx, DirectionUp, 0)
	if err != nil {
		t.Fatalf("migrate up all: %v", err)
	}
	if len(applied) != 2 || applied[0].Version != 1 || applied[1].Version != 2 {
		t.Fatalf("unexpected applied migrations: %+v", applied)
	}
	assertMigrationStatus(t, store, 2, 2)

	applied, err = store.Migrate(ctx, DirectionUp, 0)
	if err != nil {
		t.Fatalf("idempotent migrate up: %v", err)
	}
	if len(applied) != 0 {
		t.Fatalf("expected no-op up, got %+v", applied)
	}

	if err := store.MigrateDown(ctx, 1); err != nil {
		t.Fatalf("migrate down 1: %v", err)
	}
	assertMigrationStatus(t, store, 1, 1)

	if err := store.MigrateDown(ctx, 0); err != nil {
		t.Fatalf("migrate down default step: %v", err)
	}
	assertMigrationStatus(t, store, 0, 0)

	if err := store.MigrateDown(ctx, 1); err != nil {
		t.Fatalf("migrate down on empty should be no-op: %v", err)
	}
	if _, err := store.Migrate(ctx, Direction("sideways"), 0); err == nil {
		t.Fatal("expected unsupported direction error")
	}
}

func assertMigrationStatus(t *testing.T, store *Store, wantVersion int64, wantCount int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("migration status: %v", err)
	}
	if version != wantVersion || count != wantCount {
		t.Fatalf("unexpected status: version=%d count=%d, want version=%d count=%d", version, count, wantVersion, wantCount)
	}
}
