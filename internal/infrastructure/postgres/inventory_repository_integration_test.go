//go:build integration

package postgres_test

// Pruebas contra PostgreSQL real levantado con testcontainers.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-service/pkg/config"
)

// ── Setup ────────────────────────────────────────────────────────────────────

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("inventory_test"),
		tcPostgres.WithUsername("inventory"),
		tcPostgres.WithPassword("inventory"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: pgURL})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	// Idempotente
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	return pool
}

func newRecord(name string, quantity, restock int, c entity.Condition) *entity.Inventory {
	now := time.Now().UTC()
	return &entity.Inventory{Name: name, Quantity: quantity, RestockLevel: restock, Condition: c, CreatedAt: now, UpdatedAt: now}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestInventoryRepo_Postgres(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewInventoryRepository(pool)

	require.NoError(t, repo.Ping(ctx))

	paper := newRecord("paper", 100, 50, entity.ConditionNew)
	require.NoError(t, repo.Create(ctx, paper))
	assert.NotZero(t, paper.ID)

	pen := newRecord("pen", 5, 10, entity.ConditionUsed)
	require.NoError(t, repo.Create(ctx, pen))
	ink := newRecord("ink", 10, 10, entity.ConditionUsed)
	require.NoError(t, repo.Create(ctx, ink))

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, paper.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "paper", got.Name)
		assert.Equal(t, entity.ConditionNew, got.Condition)

		missing, err := repo.GetByID(ctx, 0)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Filtros", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, paper.ID, all[0].ID)

		byName, err := repo.ListByName(ctx, "pen")
		require.NoError(t, err)
		require.Len(t, byName, 1)
		assert.Equal(t, pen.ID, byName[0].ID)

		byCond, err := repo.ListByCondition(ctx, entity.ConditionUsed)
		require.NoError(t, err)
		assert.Len(t, byCond, 2)

		restock, err := repo.ListNeedingRestock(ctx)
		require.NoError(t, err)
		require.Len(t, restock, 2)
		assert.Equal(t, pen.ID, restock[0].ID)
		assert.Equal(t, ink.ID, restock[1].ID)
	})

	t.Run("Update y Delete", func(t *testing.T) {
		paper.Quantity = 7
		paper.Name = "paper A4"
		require.NoError(t, repo.Update(ctx, paper))

		got, err := repo.GetByID(ctx, paper.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, got.Quantity)
		assert.Equal(t, "paper A4", got.Name)

		require.NoError(t, repo.Delete(ctx, paper.ID))
		require.NoError(t, repo.Delete(ctx, paper.ID))

		got, err = repo.GetByID(ctx, paper.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		again := newRecord("paper", 1, 1, entity.ConditionNew)
		require.NoError(t, repo.Create(ctx, again))
		assert.Greater(t, again.ID, ink.ID)
	})

	t.Run("CHECK rechaza negativos", func(t *testing.T) {
		err := repo.Create(ctx, newRecord("bad", -1, 0, entity.ConditionNew))
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrStoreUnavailable))
	})
}

func TestIncreaseStock_ConcurrenteNoPierdeActualizaciones(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewInventoryRepository(pool)
	uc := inventory.NewInventoryUseCase(repo, postgres.NewTxRunner(pool))

	created, err := uc.Create(ctx, map[string]any{
		"name": "paper", "quantity": 0, "restock_level": 0, "condition": "new",
	})
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.IncreaseStock(ctx, created.ID, map[string]any{"add_stock": 5})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := uc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, &dto.InventoryResponse{
		ID: created.ID, Name: "paper", Quantity: workers * 5, Condition: "new", RestockLevel: 0,
	}, got)
}

func TestStoreUnavailable_CuandoElPoolEstaCerrado(t *testing.T) {
	pool := setupPool(t)
	repo := postgres.NewInventoryRepository(pool)
	pool.Close()

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
