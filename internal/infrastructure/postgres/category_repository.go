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

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
)

// lookupRow columnas comunes de categories y brands; convertible a entity.Category y entity.Brand.
type lookupRow struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// lookupTable CRUD sobre una tabla de nombre único con baja lógica.
type lookupTable struct {
	q     Querier
	table string
	label string // para mensajes: "categoría", "marca"
}

func (t lookupTable) create(ctx context.Context, row *lookupRow) error {
	err := t.q.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, t.table),
		row.Name, row.Description, row.Active, row.CreatedAt, row.UpdatedAt,
	).Scan(&row.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.Error{Kind: domain.ErrDuplicate, Message: "ya existe una " + t.label + " con ese nombre"}
		}
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

func (t lookupTable) get(ctx context.Context, id int64) (*lookupRow, error) {
	var row lookupRow
	err := t.q.QueryRow(ctx, fmt.Sprintf(
		`SELECT id, name, description, active, created_at, updated_at FROM %s WHERE id = $1`, t.table), id,
	).Scan(&row.ID, &row.Name, &row.Description, &row.Active, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", t.table, err)
	}
	return &row, nil
}

func (t lookupTable) list(ctx context.Context, includeInactive bool) ([]lookupRow, error) {
	query := fmt.Sprintf(`SELECT id, name, description, active, created_at, updated_at FROM %s`, t.table)
	if !includeInactive {
		query += ` WHERE active`
	}
	rows, err := t.q.Query(ctx, query+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.table, err)
	}
	defer rows.Close()
	var out []lookupRow
	for rows.Next() {
		var row lookupRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.Active, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.table, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (t lookupTable) setActive(ctx context.Context, id int64, active bool) error {
	tag, err := t.q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET active = $2, updated_at = now() WHERE id = $1`, t.table), id, active)
	if err != nil {
		return fmt.Errorf("set %s active: %w", t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CategoryRepo categorías sobre PostgreSQL.
type CategoryRepo struct {
	t lookupTable
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{t: lookupTable{q: q, table: "categories", label: "categoría"}}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	row := lookupRow(*c)
	if err := r.t.create(ctx, &row); err != nil {
		return err
	}
	c.ID = row.ID
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	row, err := r.t.get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	c := entity.Category(*row)
	return &c, nil
}

func (r *CategoryRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Category, error) {
	rows, err := r.t.list(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		c := entity.Category(row)
		out = append(out, &c)
	}
	return out, nil
}

func (r *CategoryRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.t.setActive(ctx, id, active)
}

// BrandRepo marcas sobre PostgreSQL.
type BrandRepo struct {
	t lookupTable
}

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{t: lookupTable{q: q, table: "brands", label: "marca"}}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	row := lookupRow(*b)
	if err := r.t.create(ctx, &row); err != nil {
		return err
	}
	b.ID = row.ID
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	row, err := r.t.get(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	b := entity.Brand(*row)
	return &b, nil
}

func (r *BrandRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Brand, error) {
	rows, err := r.t.list(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Brand, 0, len(rows))
	for _, row := range rows {
		b := entity.Brand(row)
		out = append(out, &b)
	}
	return out, nil
}

func (r *BrandRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.t.setActive(ctx, id, active)
}
