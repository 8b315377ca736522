package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
	"github.com/jhoicas/pecas-api/internal/infrastructure/memory"
)

func seedPart(t *testing.T, store *memory.Store, stock int) *entity.Part {
	t.Helper()
	p := &entity.Part{Name: "Memoria DDR4 8GB", SalePrice: decimal.NewFromInt(200), CostPrice: decimal.NewFromInt(120), QuantityInStock: stock, Condition: entity.ConditionNew, Active: true}
	require.NoError(t, memory.NewPartRepository(store).Create(context.Background(), p))
	return p
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	store := memory.NewStore()
	part := seedPart(t, store, 5)
	runner := memory.NewTxRunner(store)
	boom := errors.New("boom")

	err := runner.Run(context.Background(), func(tx *repository.Tx) error {
		require.NoError(t, tx.Stock.Decrement(context.Background(), part.ID, 3))
		require.NoError(t, tx.Movements.Create(context.Background(), &entity.StockMovement{PartID: part.ID, Quantity: 3}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := memory.NewPartRepository(store).GetByID(context.Background(), part.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.QuantityInStock)
	movs, err := memory.NewStockMovementRepository(store).ListByPart(context.Background(), part.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTxRunner_RollbackAntePanic(t *testing.T) {
	store := memory.NewStore()
	part := seedPart(t, store, 5)
	runner := memory.NewTxRunner(store)

	assert.Panics(t, func() {
		_ = runner.Run(context.Background(), func(tx *repository.Tx) error {
			_ = tx.Stock.Decrement(context.Background(), part.ID, 5)
			panic("fallo inesperado")
		})
	})

	got, _ := memory.NewPartRepository(store).GetByID(context.Background(), part.ID)
	assert.Equal(t, 5, got.QuantityInStock)

	// El candado quedó liberado: una nueva transacción puede correr.
	require.NoError(t, runner.Run(context.Background(), func(tx *repository.Tx) error {
		return tx.Stock.Decrement(context.Background(), part.ID, 1)
	}))
}

func TestTxRunner_Commit(t *testing.T) {
	store := memory.NewStore()
	part := seedPart(t, store, 1)
	runner := memory.NewTxRunner(store)

	require.NoError(t, runner.Run(context.Background(), func(tx *repository.Tx) error {
		return tx.Stock.Increment(context.Background(), part.ID, 4)
	}))
	got, _ := memory.NewPartRepository(store).GetByID(context.Background(), part.ID)
	assert.Equal(t, 5, got.QuantityInStock)
}

func TestStockRepo_DecrementCondicional(t *testing.T) {
	store := memory.NewStore()
	part := seedPart(t, store, 2)
	runner := memory.NewTxRunner(store)

	err := runner.Run(context.Background(), func(tx *repository.Tx) error {
		return tx.Stock.Decrement(context.Background(), part.ID, 3)
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	err = runner.Run(context.Background(), func(tx *repository.Tx) error {
		return tx.Stock.Decrement(context.Background(), 999, 1)
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_Serializa(t *testing.T) {
	store := memory.NewStore()
	part := seedPart(t, store, 50)
	runner := memory.NewTxRunner(store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = runner.Run(context.Background(), func(tx *repository.Tx) error {
				return tx.Stock.Decrement(context.Background(), part.ID, 1)
			})
		}()
	}
	wg.Wait()

	got, _ := memory.NewPartRepository(store).GetByID(context.Background(), part.ID)
	assert.Equal(t, 0, got.QuantityInStock)
}

func TestPartRepo_UpdateNoTocaStock(t *testing.T) {
	store := memory.NewStore()
	part := seedPart(t, store, 7)
	repo := memory.NewPartRepository(store)

	changed := *part
	changed.Name = "Memoria DDR4 16GB"
	changed.QuantityInStock = 999
	require.NoError(t, repo.Update(context.Background(), &changed))

	got, _ := repo.GetByID(context.Background(), part.ID)
	assert.Equal(t, "Memoria DDR4 16GB", got.Name)
	assert.Equal(t, 7, got.QuantityInStock)
}

func TestPartRepo_ListLowStockOrdenaPorFaltante(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewPartRepository(store)
	ctx := context.Background()
	for _, p := range []*entity.Part{
		{Name: "A", QuantityInStock: 4, MinimumQuantity: 5, Active: true},
		{Name: "B", QuantityInStock: 0, MinimumQuantity: 10, Active: true},
		{Name: "C", QuantityInStock: 50, MinimumQuantity: 5, Active: true},
		{Name: "D", QuantityInStock: 0, MinimumQuantity: 3, Active: false},
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	low, err := repo.List(ctx, repository.PartFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "B", low[0].Name)
	assert.Equal(t, "A", low[1].Name)

	all, err := repo.List(ctx, repository.PartFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestPartyRepos_Duplicados(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	suppliers := memory.NewSupplierRepository(store)
	require.NoError(t, suppliers.Create(ctx, &entity.Supplier{Name: "Distribuidora Sul", TaxID: "12.345.678/0001-90", Active: true}))
	assert.ErrorIs(t, suppliers.Create(ctx, &entity.Supplier{Name: "Otra", TaxID: "12.345.678/0001-90"}), domain.ErrDuplicate)

	methods := memory.NewPaymentMethodRepository(store)
	require.NoError(t, methods.Create(ctx, &entity.PaymentMethod{Name: "PIX", Active: true}))
	assert.ErrorIs(t, methods.Create(ctx, &entity.PaymentMethod{Name: "pix"}), domain.ErrDuplicate)

	users := memory.NewUserRepository(store)
	require.NoError(t, users.Create(ctx, &entity.User{Email: "ana@pecas.com"}))
	assert.ErrorIs(t, users.Create(ctx, &entity.User{Email: "ANA@pecas.com"}), domain.ErrEmailAlreadyExists)
}
