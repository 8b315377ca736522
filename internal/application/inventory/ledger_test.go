package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
	"github.com/jhoicas/pecas-api/internal/infrastructure/memory"
)

func setup(t *testing.T, stock int) (*memory.Store, *memory.TxRunner, *entity.Part) {
	t.Helper()
	store := memory.NewStore()
	part := &entity.Part{Name: "Fonte 500W", QuantityInStock: stock, MinimumQuantity: 1, Active: true}
	require.NoError(t, memory.NewPartRepository(store).Create(context.Background(), part))
	return store, memory.NewTxRunner(store), part
}

func TestLedger_IncrementRegistraMovimiento(t *testing.T) {
	store, runner, part := setup(t, 2)
	ledger := inventory.NewLedger()
	ref := inventory.NewTransactionRef()

	err := runner.Run(context.Background(), func(tx *repository.Tx) error {
		return ledger.Increment(context.Background(), tx, inventory.Movement{
			TransactionRef: ref, PartID: part.ID, Quantity: 3,
			Source: entity.SourcePurchaseReceipt, ReferenceID: 10, UserID: 1,
		})
	})
	require.NoError(t, err)

	got, _ := memory.NewPartRepository(store).GetByID(context.Background(), part.ID)
	assert.Equal(t, 5, got.QuantityInStock)

	movs, err := memory.NewStockMovementRepository(store).ListByPart(context.Background(), part.ID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementIn, movs[0].Direction)
	assert.Equal(t, ref, movs[0].TransactionRef)
	assert.Equal(t, int64(10), movs[0].ReferenceID)
}

func TestLedger_DecrementInsuficiente(t *testing.T) {
	store, runner, part := setup(t, 2)
	ledger := inventory.NewLedger()

	err := runner.Run(context.Background(), func(tx *repository.Tx) error {
		return ledger.Decrement(context.Background(), tx, inventory.Movement{PartID: part.ID, Quantity: 3, Source: entity.SourceSale})
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Fonte 500W")
	assert.Contains(t, err.Error(), "Disponible: 2")

	got, _ := memory.NewPartRepository(store).GetByID(context.Background(), part.ID)
	assert.Equal(t, 2, got.QuantityInStock)
}

func TestLedger_DecrementHastaCero(t *testing.T) {
	store, runner, part := setup(t, 2)
	ledger := inventory.NewLedger()

	err := runner.Run(context.Background(), func(tx *repository.Tx) error {
		return ledger.Decrement(context.Background(), tx, inventory.Movement{PartID: part.ID, Quantity: 2, Source: entity.SourceSale})
	})
	require.NoError(t, err)
	got, _ := memory.NewPartRepository(store).GetByID(context.Background(), part.ID)
	assert.Equal(t, 0, got.QuantityInStock)
}

func TestLedger_ValidaCantidadYPieza(t *testing.T) {
	_, runner, part := setup(t, 2)
	ledger := inventory.NewLedger()
	ctx := context.Background()

	cases := []struct {
		name string
		m    inventory.Movement
		want error
	}{
		{"cantidad cero", inventory.Movement{PartID: part.ID, Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", inventory.Movement{PartID: part.ID, Quantity: -1}, domain.ErrInvalidInput},
		{"pieza inexistente", inventory.Movement{PartID: 999, Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := runner.Run(ctx, func(tx *repository.Tx) error {
				return ledger.Increment(ctx, tx, tc.m)
			})
			assert.ErrorIs(t, err, tc.want)
			err = runner.Run(ctx, func(tx *repository.Tx) error {
				return ledger.Decrement(ctx, tx, tc.m)
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestHistoryUseCase_ListByPart(t *testing.T) {
	store, runner, part := setup(t, 0)
	ledger := inventory.NewLedger()
	ctx := context.Background()
	require.NoError(t, runner.Run(ctx, func(tx *repository.Tx) error {
		if err := ledger.Increment(ctx, tx, inventory.Movement{PartID: part.ID, Quantity: 5, Source: entity.SourcePurchaseReceipt}); err != nil {
			return err
		}
		return ledger.Decrement(ctx, tx, inventory.Movement{PartID: part.ID, Quantity: 2, Source: entity.SourceSale})
	}))

	uc := inventory.NewHistoryUseCase(memory.NewPartRepository(store), memory.NewStockMovementRepository(store))
	movs, err := uc.ListByPart(ctx, part.ID, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.SourceSale, movs[0].Source, "más reciente primero")

	_, err = uc.ListByPart(ctx, 999, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
