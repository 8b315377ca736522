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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, supplier_id, user_id, order_date, total_value, status, created_at, updated_at`

// PurchaseRepo compras (cabecera + purchase_items) sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.SupplierID, &p.UserID, &p.OrderDate, &p.TotalValue, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO purchases (supplier_id, user_id, order_date, total_value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.SupplierID, p.UserID, p.OrderDate, p.TotalValue, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO purchase_items (purchase_id, part_id, quantity, unit_cost)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		it.PurchaseID, it.PartID, it.Quantity, it.UnitCost,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseRepo) get(ctx context.Context, query string, id int64) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID int64) ([]entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, purchase_id, part_id, quantity, unit_cost FROM purchase_items WHERE purchase_id = $1 ORDER BY id`,
		purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	items := []entity.PurchaseItem{}
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.PartID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PurchaseRepo) DeleteItems(ctx context.Context, purchaseID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_items WHERE purchase_id = $1`, purchaseID); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	return nil
}

func (r *PurchaseRepo) UpdateHeader(ctx context.Context, p *entity.Purchase) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchases SET supplier_id = $2, order_date = $3, total_value = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.SupplierID, p.OrderDate, p.TotalValue, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepo) UpdateStatus(ctx context.Context, id int64, status entity.Status, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE purchases SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepo) List(ctx context.Context, in repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var f filter
	if in.SupplierID != nil {
		f.add("supplier_id = ?", *in.SupplierID)
	}
	if in.Status != "" {
		f.add("status = ?", in.Status)
	}
	if in.From != nil {
		f.add("order_date >= ?", *in.From)
	}
	if in.To != nil {
		f.add("order_date <= ?", *in.To)
	}
	query := `SELECT ` + purchaseColumns + ` FROM purchases` + f.where() + ` ORDER BY order_date DESC, id DESC`
	query += f.page(in.Limit, in.Offset)
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	list := []*entity.Purchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
