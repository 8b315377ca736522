package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, transaction_ref, part_id, direction, quantity, source, reference_id, user_id, created_at`

// StockMovementRepo historial append-only del ledger.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (transaction_ref, part_id, direction, quantity, source, reference_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.TransactionRef, m.PartID, m.Direction, m.Quantity, m.Source, m.ReferenceID, m.UserID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByPart más recientes primero.
func (r *StockMovementRepo) ListByPart(ctx context.Context, partID int64, limit int) ([]*entity.StockMovement, error) {
	var f filter
	f.add("part_id = ?", partID)
	query := `SELECT ` + movementColumns + ` FROM stock_movements` + f.where() + ` ORDER BY created_at DESC, id DESC` + f.page(limit, 0)
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by part: %w", err)
	}
	return collectMovements(rows)
}

func (r *StockMovementRepo) ListByReference(ctx context.Context, source string, referenceID int64) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE source = $1 AND reference_id = $2 ORDER BY id`,
		source, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	list := []*entity.StockMovement{}
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionRef, &m.PartID, &m.Direction, &m.Quantity,
			&m.Source, &m.ReferenceID, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
