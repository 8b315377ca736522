package memory

import (
	"context"

	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre una copia del estado y la publica solo si fn termina sin error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run equivale a BEGIN / fn / COMMIT. Ante error o panic la copia se descarta (rollback).
func (r *TxRunner) Run(ctx context.Context, fn func(tx *repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	work := r.store.data.clone()
	r.store.mu.RUnlock()

	c := conn{store: r.store, work: work}
	tx := &repository.Tx{
		Parts:          &PartRepo{c: c},
		Stock:          &StockRepo{c: c},
		Movements:      &StockMovementRepo{c: c},
		Purchases:      &PurchaseRepo{c: c},
		Sales:          &SaleRepo{c: c},
		Exchanges:      &ExchangeRepo{c: c},
		Suppliers:      &SupplierRepo{c: c},
		Customers:      &CustomerRepo{c: c},
		PaymentMethods: &PaymentMethodRepo{c: c},
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	r.store.data = work
	r.store.mu.Unlock()
	return nil
}
