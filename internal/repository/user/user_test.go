package user

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/domain"
	"storefront-api/internal/migrate"
)

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, CreateInput{
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected ID set")
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", created.Role)
	}
	if created.Cart == nil || len(created.Cart) != 0 {
		t.Fatalf("expected empty cart, got %v", created.Cart)
	}

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected same user back, got %q want %q", got.ID, created.ID)
	}

	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	in := CreateInput{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, in); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPostgres_MutateCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, CreateInput{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.MutateCart(ctx, created.ID, func(cart domain.CartData) (domain.CartData, error) {
		return cart.Increment("p1", "M"), nil
	})
	if err != nil {
		t.Fatalf("MutateCart: %v", err)
	}
	if updated.Quantity("p1", "M") != 1 {
		t.Fatalf("expected quantity 1, got %d", updated.Quantity("p1", "M"))
	}

	stored, err := repo.GetCart(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if stored.Quantity("p1", "M") != 1 {
		t.Fatalf("expected persisted quantity 1, got %d", stored.Quantity("p1", "M"))
	}

	if err := repo.ClearCart(ctx, created.ID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	cleared, err := repo.GetCart(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCart after clear: %v", err)
	}
	if len(cleared) != 0 {
		t.Fatalf("expected empty cart after clear, got %v", cleared)
	}
}

func TestPostgres_MutateCartConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, CreateInput{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The row lock serializes concurrent mutations; without it some of
	// these increments would overwrite each other.
	const workers = 16
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.MutateCart(ctx, created.ID, func(cart domain.CartData) (domain.CartData, error) {
				return cart.Increment("p1", "M"), nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("MutateCart: %v", err)
		}
	}

	stored, err := repo.GetCart(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if got := stored.Quantity("p1", "M"); got != workers {
		t.Fatalf("expected quantity %d after %d concurrent increments, got %d", workers, workers, got)
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
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE order_items, orders, tokens, products, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
