package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

const partColumns = `id, name, description, brand_id, category_id, sale_price, cost_price,
	quantity_in_stock, minimum_quantity, condition, active, created_at, updated_at`

// PartRepo implementación de PartRepository sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

func scanPart(row pgx.Row) (*entity.Part, error) {
	var p entity.Part
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.BrandID, &p.CategoryID, &p.SalePrice, &p.CostPrice,
		&p.QuantityInStock, &p.MinimumQuantity, &p.Condition, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta la pieza; quantity_in_stock se guarda tal cual (el saldo inicial lo mueve el ledger).
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	query := `
		INSERT INTO parts (name, description, brand_id, category_id, sale_price, cost_price,
			quantity_in_stock, minimum_quantity, condition, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Description, p.BrandID, p.CategoryID, p.SalePrice, p.CostPrice,
		p.QuantityInStock, p.MinimumQuantity, p.Condition, p.Active, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

func (r *PartRepo) GetByID(ctx context.Context, id int64) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Usar dentro de una tx.
func (r *PartRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Part, error) {
	p, err := scanPart(r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part for update: %w", err)
	}
	return p, nil
}

// Update guarda los datos de catálogo. quantity_in_stock no aparece en el SET.
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	query := `
		UPDATE parts SET name = $2, description = $3, brand_id = $4, category_id = $5,
			sale_price = $6, cost_price = $7, minimum_quantity = $8, condition = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.BrandID, p.CategoryID,
		p.SalePrice, p.CostPrice, p.MinimumQuantity, p.Condition, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE parts SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set part active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartRepo) List(ctx context.Context, in repository.PartFilter) ([]*entity.Part, error) {
	var f filter
	if !in.IncludeInactive {
		f.add("active = ?", true)
	}
	if in.CategoryID != nil {
		f.add("category_id = ?", *in.CategoryID)
	}
	if in.BrandID != nil {
		f.add("brand_id = ?", *in.BrandID)
	}
	if in.Condition != "" {
		f.add("condition = ?", in.Condition)
	}
	if in.Search != "" {
		f.add("name ILIKE '%' || ? || '%'", in.Search)
	}
	order := " ORDER BY name, id"
	if in.LowStock {
		f.conds = append(f.conds, "quantity_in_stock <= minimum_quantity")
		order = " ORDER BY quantity_in_stock - minimum_quantity, name, id"
	}
	rows, err := r.q.Query(ctx, `SELECT `+partColumns+` FROM parts`+f.where()+order, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	list := []*entity.Part{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
