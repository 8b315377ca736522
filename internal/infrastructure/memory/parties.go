package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)
)

// SupplierRepo proveedores en memoria. tax_id es único cuando viene informado.
type SupplierRepo struct {
	c conn
}

// NewSupplierRepository construye el repositorio fuera de transacción.
func NewSupplierRepository(store *Store) *SupplierRepo {
	return &SupplierRepo{c: conn{store: store}}
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.c.update(ctx, func(st *state) error {
		for _, cur := range st.suppliers {
			if s.TaxID != "" && cur.TaxID == s.TaxID {
				return domain.ErrDuplicate
			}
		}
		s.ID = st.next("supplier")
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.c.view(ctx, func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Supplier, error) {
	out := []*entity.Supplier{}
	err := r.c.view(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.suppliers) {
			if s := st.suppliers[id]; includeInactive || s.Active {
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r *SupplierRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.c.update(ctx, func(st *state) error {
		s, ok := st.suppliers[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.Active, s.UpdatedAt = active, time.Now()
		st.suppliers[id] = s
		return nil
	})
}

// CustomerRepo clientes en memoria. tax_id es único cuando viene informado.
type CustomerRepo struct {
	c conn
}

// NewCustomerRepository construye el repositorio fuera de transacción.
func NewCustomerRepository(store *Store) *CustomerRepo {
	return &CustomerRepo{c: conn{store: store}}
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.c.update(ctx, func(st *state) error {
		for _, cur := range st.customers {
			if c.TaxID != "" && cur.TaxID == c.TaxID {
				return domain.ErrDuplicate
			}
		}
		c.ID = st.next("customer")
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.c.view(ctx, func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Customer, error) {
	out := []*entity.Customer{}
	err := r.c.view(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.customers) {
			if c := st.customers[id]; includeInactive || c.Active {
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r *CustomerRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.c.update(ctx, func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.Active, c.UpdatedAt = active, time.Now()
		st.customers[id] = c
		return nil
	})
}

// PaymentMethodRepo formas de pago en memoria. El nombre es único.
type PaymentMethodRepo struct {
	c conn
}

// NewPaymentMethodRepository construye el repositorio fuera de transacción.
func NewPaymentMethodRepository(store *Store) *PaymentMethodRepo {
	return &PaymentMethodRepo{c: conn{store: store}}
}

func (r *PaymentMethodRepo) Create(ctx context.Context, m *entity.PaymentMethod) error {
	return r.c.update(ctx, func(st *state) error {
		for _, cur := range st.paymentMethods {
			if strings.EqualFold(cur.Name, m.Name) {
				return domain.ErrDuplicate
			}
		}
		m.ID = st.next("payment_method")
		st.paymentMethods[m.ID] = *m
		return nil
	})
}

func (r *PaymentMethodRepo) GetByID(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	var out *entity.PaymentMethod
	err := r.c.view(ctx, func(st *state) error {
		if m, ok := st.paymentMethods[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

func (r *PaymentMethodRepo) List(ctx context.Context, includeInactive bool) ([]*entity.PaymentMethod, error) {
	out := []*entity.PaymentMethod{}
	err := r.c.view(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.paymentMethods) {
			if m := st.paymentMethods[id]; includeInactive || m.Active {
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r *PaymentMethodRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.c.update(ctx, func(st *state) error {
		m, ok := st.paymentMethods[id]
		if !ok {
			return domain.ErrNotFound
		}
		m.Active = active
		st.paymentMethods[id] = m
		return nil
	})
}
