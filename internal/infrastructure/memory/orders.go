package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.ExchangeRepository = (*ExchangeRepo)(nil)
)

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

// PurchaseRepo compras en memoria. Los ítems se guardan aparte, como en la tabla purchase_item.
type PurchaseRepo struct {
	c conn
}

// NewPurchaseRepository construye el repositorio fuera de transacción.
func NewPurchaseRepository(store *Store) *PurchaseRepo {
	return &PurchaseRepo{c: conn{store: store}}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	return r.c.update(ctx, func(st *state) error {
		p.ID = st.next("purchase")
		header := *p
		header.Items = nil
		st.purchases[p.ID] = header
		return nil
	})
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	return r.c.update(ctx, func(st *state) error {
		if _, ok := st.purchases[it.PurchaseID]; !ok {
			return domain.ErrNotFound
		}
		it.ID = st.next("purchase_item")
		st.purchaseItems[it.PurchaseID] = append(st.purchaseItems[it.PurchaseID], *it)
		return nil
	})
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.c.view(ctx, func(st *state) error {
		if p, ok := st.purchases[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate: las transacciones en memoria ya son exclusivas.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID int64) ([]entity.PurchaseItem, error) {
	var out []entity.PurchaseItem
	err := r.c.view(ctx, func(st *state) error {
		out = append([]entity.PurchaseItem{}, st.purchaseItems[purchaseID]...)
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) DeleteItems(ctx context.Context, purchaseID int64) error {
	return r.c.update(ctx, func(st *state) error {
		delete(st.purchaseItems, purchaseID)
		return nil
	})
}

func (r *PurchaseRepo) UpdateHeader(ctx context.Context, p *entity.Purchase) error {
	return r.c.update(ctx, func(st *state) error {
		cur, ok := st.purchases[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.SupplierID = p.SupplierID
		cur.OrderDate = p.OrderDate
		cur.TotalValue = p.TotalValue
		cur.UpdatedAt = p.UpdatedAt
		st.purchases[p.ID] = cur
		return nil
	})
}

func (r *PurchaseRepo) UpdateStatus(ctx context.Context, id int64, status entity.Status, at time.Time) error {
	return r.c.update(ctx, func(st *state) error {
		cur, ok := st.purchases[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status, cur.UpdatedAt = status, at
		st.purchases[id] = cur
		return nil
	})
}

func (r *PurchaseRepo) List(ctx context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	out := []*entity.Purchase{}
	err := r.c.view(ctx, func(st *state) error {
		for _, p := range st.purchases {
			if f.SupplierID != nil && p.SupplierID != *f.SupplierID {
				continue
			}
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if !inRange(p.OrderDate, f.From, f.To) {
				continue
			}
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OrderDate.Equal(out[j].OrderDate) {
			return out[i].OrderDate.After(out[j].OrderDate)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Limit, f.Offset), err
}

// SaleRepo ventas en memoria.
type SaleRepo struct {
	c conn
}

// NewSaleRepository construye el repositorio fuera de transacción.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{c: conn{store: store}}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.c.update(ctx, func(st *state) error {
		s.ID = st.next("sale")
		header := *s
		header.Items = nil
		st.sales[s.ID] = header
		return nil
	})
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	return r.c.update(ctx, func(st *state) error {
		if _, ok := st.sales[it.SaleID]; !ok {
			return domain.ErrNotFound
		}
		it.ID = st.next("sale_item")
		st.saleItems[it.SaleID] = append(st.saleItems[it.SaleID], *it)
		return nil
	})
}

func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.c.view(ctx, func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) ListItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error) {
	var out []entity.SaleItem
	err := r.c.view(ctx, func(st *state) error {
		out = append([]entity.SaleItem{}, st.saleItems[saleID]...)
		return nil
	})
	return out, err
}

func (r *SaleRepo) DeleteItems(ctx context.Context, saleID int64) error {
	return r.c.update(ctx, func(st *state) error {
		delete(st.saleItems, saleID)
		return nil
	})
}

func (r *SaleRepo) UpdateHeader(ctx context.Context, s *entity.Sale) error {
	return r.c.update(ctx, func(st *state) error {
		cur, ok := st.sales[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.CustomerID = s.CustomerID
		cur.PaymentMethodID = s.PaymentMethodID
		cur.SoldAt = s.SoldAt
		cur.Discount = s.Discount
		cur.TotalValue = s.TotalValue
		cur.UpdatedAt = s.UpdatedAt
		st.sales[s.ID] = cur
		return nil
	})
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id int64, status entity.Status, at time.Time) error {
	return r.c.update(ctx, func(st *state) error {
		cur, ok := st.sales[id]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status, cur.UpdatedAt = status, at
		st.sales[id] = cur
		return nil
	})
}

func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	out := []*entity.Sale{}
	err := r.c.view(ctx, func(st *state) error {
		for _, s := range st.sales {
			if f.CustomerID != nil && s.CustomerID != *f.CustomerID {
				continue
			}
			if f.PaymentMethodID != nil && s.PaymentMethodID != *f.PaymentMethodID {
				continue
			}
			if f.Status != "" && s.Status != f.Status {
				continue
			}
			if !inRange(s.SoldAt, f.From, f.To) {
				continue
			}
			out = append(out, &s)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SoldAt.Equal(out[j].SoldAt) {
			return out[i].SoldAt.After(out[j].SoldAt)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Limit, f.Offset), err
}

// ExchangeRepo cambios en memoria.
type ExchangeRepo struct {
	c conn
}

// NewExchangeRepository construye el repositorio fuera de transacción.
func NewExchangeRepository(store *Store) *ExchangeRepo {
	return &ExchangeRepo{c: conn{store: store}}
}

func (r *ExchangeRepo) Create(ctx context.Context, e *entity.Exchange) error {
	return r.c.update(ctx, func(st *state) error {
		if _, ok := st.sales[e.SaleID]; !ok {
			return domain.ErrNotFound
		}
		e.ID = st.next("exchange")
		st.exchanges[e.ID] = *e
		return nil
	})
}

func (r *ExchangeRepo) GetByID(ctx context.Context, id int64) (*entity.Exchange, error) {
	var out *entity.Exchange
	err := r.c.view(ctx, func(st *state) error {
		if e, ok := st.exchanges[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *ExchangeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Exchange, error) {
	return r.GetByID(ctx, id)
}

func (r *ExchangeRepo) Cancel(ctx context.Context, id int64, at time.Time) error {
	return r.c.update(ctx, func(st *state) error {
		e, ok := st.exchanges[id]
		if !ok {
			return domain.ErrNotFound
		}
		e.Status = entity.StatusCancelled
		e.CancelledAt = &at
		st.exchanges[id] = e
		return nil
	})
}

func (r *ExchangeRepo) List(ctx context.Context, f repository.ExchangeFilter) ([]*entity.Exchange, error) {
	out := []*entity.Exchange{}
	err := r.c.view(ctx, func(st *state) error {
		for _, e := range st.exchanges {
			if f.SaleID != nil && e.SaleID != *f.SaleID {
				continue
			}
			if f.Status != "" && e.Status != f.Status {
				continue
			}
			if !inRange(e.ExchangedAt, f.From, f.To) {
				continue
			}
			out = append(out, &e)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExchangedAt.Equal(out[j].ExchangedAt) {
			return out[i].ExchangedAt.After(out[j].ExchangedAt)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, f.Limit, f.Offset), err
}

func (r *ExchangeRepo) SumActiveQuantity(ctx context.Context, saleID, partID int64) (int, error) {
	total := 0
	err := r.c.view(ctx, func(st *state) error {
		for _, e := range st.exchanges {
			if e.SaleID == saleID && e.OriginalPartID == partID && e.Status == entity.StatusActive {
				total += e.Quantity
			}
		}
		return nil
	})
	return total, err
}
