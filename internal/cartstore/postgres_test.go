package cartstore

import (
	"context"
	"os"
	"testing"
	"time"

	"harvest-direct/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	store := NewPostgres(pool, time.Hour)

	lines, err := store.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty for missing token, got %+v", lines)
	}

	in := []Line{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}}
	if err := store.Put(ctx, "tok", in); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0].ProductID != 1 || got[1].Quantity != 1 {
		t.Fatalf("unexpected lines %+v", got)
	}

	// Put for an existing token replaces its lines.
	if err := store.Put(ctx, "tok", []Line{{ProductID: 3, Quantity: 5}}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	got, err = store.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("get after replace: %v", err)
	}
	if len(got) != 1 || got[0].Quantity != 5 {
		t.Fatalf("unexpected lines after replace %+v", got)
	}

	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = store.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty after delete, got %+v", got)
	}
}

func TestPostgres_ExpiredRowsReadEmptyAndPurge(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	store := NewPostgres(pool, -time.Minute) // already expired on write

	if err := store.Put(ctx, "tok", []Line{{ProductID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := store.Get(ctx, "tok")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected expired cart to read empty, got %+v", got)
	}

	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged row, got %d", purged)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE carts`); err != nil {
		t.Fatalf("truncate carts: %v", err)
	}
	return pool
}
