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
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)
)

const partyColumns = `id, name, tax_id, email, phone, active, created_at, updated_at`

// party columnas compartidas por suppliers y customers.
type party struct {
	ID        *int64
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func insertParty(ctx context.Context, q Querier, table string, p party) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, tax_id, email, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`, table)
	err := q.QueryRow(ctx, query, p.Name, p.TaxID, p.Email, p.Phone, p.Active, p.CreatedAt, p.UpdatedAt).Scan(p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.Error{Kind: domain.ErrDuplicate, Message: "ya existe un registro con ese documento"}
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func setPartyActive(ctx context.Context, q Querier, table string, id int64, active bool) error {
	tag, err := q.Exec(ctx, fmt.Sprintf(`UPDATE %s SET active = $2, updated_at = now() WHERE id = $1`, table), id, active)
	if err != nil {
		return fmt.Errorf("set %s active: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func listPartyQuery(table string, includeInactive bool) string {
	query := `SELECT ` + partyColumns + ` FROM ` + table
	if !includeInactive {
		query += ` WHERE active`
	}
	return query + ` ORDER BY name, id`
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return insertParty(ctx, r.q, "suppliers", party{
		ID: &s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone,
		Active: s.Active, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	})
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM suppliers WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, listPartyQuery("suppliers", includeInactive))
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Supplier{}
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return setPartyActive(ctx, r.q, "suppliers", id, active)
}

// CustomerRepo clientes sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return insertParty(ctx, r.q, "customers", party{
		ID: &c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone,
		Active: c.Active, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	})
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM customers WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, listPartyQuery("customers", includeInactive))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Customer{}
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CustomerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return setPartyActive(ctx, r.q, "customers", id, active)
}

// PaymentMethodRepo formas de pago sobre PostgreSQL.
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

func (r *PaymentMethodRepo) Create(ctx context.Context, m *entity.PaymentMethod) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO payment_methods (name, description, active, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, m.Name, m.Description, m.Active, m.CreatedAt).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.Error{Kind: domain.ErrDuplicate, Message: "ya existe una forma de pago con ese nombre"}
		}
		return fmt.Errorf("insert payment method: %w", err)
	}
	return nil
}

func (r *PaymentMethodRepo) GetByID(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	var m entity.PaymentMethod
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, active, created_at FROM payment_methods WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Description, &m.Active, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return &m, nil
}

func (r *PaymentMethodRepo) List(ctx context.Context, includeInactive bool) ([]*entity.PaymentMethod, error) {
	query := `SELECT id, name, description, active, created_at FROM payment_methods`
	if !includeInactive {
		query += ` WHERE active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	list := []*entity.PaymentMethod{}
	for rows.Next() {
		var m entity.PaymentMethod
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Active, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *PaymentMethodRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE payment_methods SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set payment method active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
