package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ repository.ExchangeRepository = (*ExchangeRepo)(nil)

const exchangeColumns = `id, sale_id, original_part_id, substitute_part_id, quantity, reason, user_id, exchanged_at, status, cancelled_at`

// ExchangeRepo cambios y devoluciones sobre PostgreSQL.
type ExchangeRepo struct {
	q Querier
}

// NewExchangeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExchangeRepository(q Querier) *ExchangeRepo {
	return &ExchangeRepo{q: q}
}

func scanExchange(row pgx.Row) (*entity.Exchange, error) {
	var e entity.Exchange
	if err := row.Scan(&e.ID, &e.SaleID, &e.OriginalPartID, &e.SubstitutePartID, &e.Quantity,
		&e.Reason, &e.UserID, &e.ExchangedAt, &e.Status, &e.CancelledAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExchangeRepo) Create(ctx context.Context, e *entity.Exchange) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO exchanges (sale_id, original_part_id, substitute_part_id, quantity, reason, user_id, exchanged_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		e.SaleID, e.OriginalPartID, e.SubstitutePartID, e.Quantity, e.Reason, e.UserID, e.ExchangedAt, e.Status,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

func (r *ExchangeRepo) GetByID(ctx context.Context, id int64) (*entity.Exchange, error) {
	return r.get(ctx, `SELECT `+exchangeColumns+` FROM exchanges WHERE id = $1`, id)
}

func (r *ExchangeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Exchange, error) {
	return r.get(ctx, `SELECT `+exchangeColumns+` FROM exchanges WHERE id = $1 FOR UPDATE`, id)
}

func (r *ExchangeRepo) get(ctx context.Context, query string, id int64) (*entity.Exchange, error) {
	e, err := scanExchange(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange: %w", err)
	}
	return e, nil
}

func (r *ExchangeRepo) Cancel(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE exchanges SET status = $2, cancelled_at = $3 WHERE id = $1`,
		id, entity.StatusCancelled, at)
	if err != nil {
		return fmt.Errorf("cancel exchange: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExchangeRepo) List(ctx context.Context, in repository.ExchangeFilter) ([]*entity.Exchange, error) {
	var f filter
	if in.SaleID != nil {
		f.add("sale_id = ?", *in.SaleID)
	}
	if in.Status != "" {
		f.add("status = ?", in.Status)
	}
	if in.From != nil {
		f.add("exchanged_at >= ?", *in.From)
	}
	if in.To != nil {
		f.add("exchanged_at <= ?", *in.To)
	}
	query := `SELECT ` + exchangeColumns + ` FROM exchanges` + f.where() + ` ORDER BY exchanged_at DESC, id DESC`
	query += f.page(in.Limit, in.Offset)
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list exchanges: %w", err)
	}
	defer rows.Close()
	list := []*entity.Exchange{}
	for rows.Next() {
		e, err := scanExchange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *ExchangeRepo) SumActiveQuantity(ctx context.Context, saleID, partID int64) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM exchanges
		WHERE sale_id = $1 AND original_part_id = $2 AND status = $3`,
		saleID, partID, entity.StatusActive,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum active exchanges: %w", err)
	}
	return total, nil
}
