package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un panic dentro de fn también termina en Rollback (defer) antes de propagarse.
func (r *TxRunner) Run(ctx context.Context, fn func(tx *repository.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewTx agrupa los repositorios atados a tx.
func NewTx(tx pgx.Tx) *repository.Tx {
	return &repository.Tx{
		Parts:          NewPartRepository(tx),
		Stock:          NewStockRepository(tx),
		Movements:      NewStockMovementRepository(tx),
		Purchases:      NewPurchaseRepository(tx),
		Sales:          NewSaleRepository(tx),
		Exchanges:      NewExchangeRepository(tx),
		Suppliers:      NewSupplierRepository(tx),
		Customers:      NewCustomerRepository(tx),
		PaymentMethods: NewPaymentMethodRepository(tx),
	}
}
