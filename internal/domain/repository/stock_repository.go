package repository

import "context"

// StockRepository aplica deltas atómicos sobre part.quantity_in_stock.
// Solo lo usa el Ledger de inventario, siempre dentro de una transacción.
type StockRepository interface {
	// Increment suma qty. domain.ErrNotFound si la pieza no existe.
	Increment(ctx context.Context, partID int64, qty int) error
	// Decrement resta qty solo si hay stock suficiente (UPDATE condicional).
	// domain.ErrInsufficientStock si no alcanza, domain.ErrNotFound si la pieza no existe.
	Decrement(ctx context.Context, partID int64, qty int) error
}
