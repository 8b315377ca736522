package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo aplica los deltas sobre parts.quantity_in_stock (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) Increment(ctx context.Context, partID int64, qty int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE parts SET quantity_in_stock = quantity_in_stock + $2, updated_at = now() WHERE id = $1`,
		partID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Decrement es un UPDATE condicional: solo resta si alcanza. Dos ventas concurrentes de la
// última unidad se serializan en el lock de fila y la segunda no encuentra la condición.
func (r *StockRepo) Decrement(ctx context.Context, partID int64, qty int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE parts SET quantity_in_stock = quantity_in_stock - $2, updated_at = now()
		 WHERE id = $1 AND quantity_in_stock >= $2`,
		partID, qty)
	if err != nil {
		if isStockCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM parts WHERE id = $1)`, partID).Scan(&exists); err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInsufficientStock
}
