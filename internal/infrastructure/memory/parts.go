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
	_ repository.PartRepository  = (*PartRepo)(nil)
	_ repository.StockRepository = (*StockRepo)(nil)
)

// PartRepo catálogo de piezas en memoria.
type PartRepo struct {
	c conn
}

// NewPartRepository construye el repositorio fuera de transacción.
func NewPartRepository(store *Store) *PartRepo {
	return &PartRepo{c: conn{store: store}}
}

func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	return r.c.update(ctx, func(st *state) error {
		part.ID = st.next("part")
		st.parts[part.ID] = *part
		return nil
	})
}

func (r *PartRepo) GetByID(ctx context.Context, id int64) (*entity.Part, error) {
	var out *entity.Part
	err := r.c.view(ctx, func(st *state) error {
		if p, ok := st.parts[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate: las transacciones en memoria ya son exclusivas.
func (r *PartRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Part, error) {
	return r.GetByID(ctx, id)
}

// Update no toca quantity_in_stock.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	return r.c.update(ctx, func(st *state) error {
		cur, ok := st.parts[part.ID]
		if !ok {
			return domain.ErrNotFound
		}
		stock := cur.QuantityInStock
		cur = *part
		cur.QuantityInStock = stock
		st.parts[part.ID] = cur
		return nil
	})
}

func (r *PartRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.c.update(ctx, func(st *state) error {
		p, ok := st.parts[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Active = active
		p.UpdatedAt = time.Now()
		st.parts[id] = p
		return nil
	})
}

func (r *PartRepo) List(ctx context.Context, f repository.PartFilter) ([]*entity.Part, error) {
	out := []*entity.Part{}
	err := r.c.view(ctx, func(st *state) error {
		search := strings.ToLower(f.Search)
		for _, id := range sortedIDs(st.parts) {
			p := st.parts[id]
			switch {
			case !f.IncludeInactive && !p.Active:
				continue
			case f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID):
				continue
			case f.BrandID != nil && (p.BrandID == nil || *p.BrandID != *f.BrandID):
				continue
			case f.Condition != "" && p.Condition != f.Condition:
				continue
			case f.LowStock && !p.LowStock():
				continue
			case search != "" && !strings.Contains(strings.ToLower(p.Name), search):
				continue
			}
			out = append(out, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.LowStock {
			gi := out[i].QuantityInStock - out[i].MinimumQuantity
			gj := out[j].QuantityInStock - out[j].MinimumQuantity
			if gi != gj {
				return gi < gj
			}
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// StockRepo aplica los deltas de stock con la misma semántica que el UPDATE condicional de postgres.
type StockRepo struct {
	c conn
}

func (r *StockRepo) Increment(ctx context.Context, partID int64, qty int) error {
	return r.c.update(ctx, func(st *state) error {
		p, ok := st.parts[partID]
		if !ok {
			return domain.ErrNotFound
		}
		p.QuantityInStock += qty
		p.UpdatedAt = time.Now()
		st.parts[partID] = p
		return nil
	})
}

func (r *StockRepo) Decrement(ctx context.Context, partID int64, qty int) error {
	return r.c.update(ctx, func(st *state) error {
		p, ok := st.parts[partID]
		if !ok {
			return domain.ErrNotFound
		}
		if p.QuantityInStock < qty {
			return domain.ErrInsufficientStock
		}
		p.QuantityInStock -= qty
		p.UpdatedAt = time.Now()
		st.parts[partID] = p
		return nil
	})
}

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo historial del ledger en memoria.
type StockMovementRepo struct {
	c conn
}

// NewStockMovementRepository construye el repositorio fuera de transacción.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{c: conn{store: store}}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.c.update(ctx, func(st *state) error {
		m.ID = st.next("stock_movement")
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *StockMovementRepo) ListByPart(ctx context.Context, partID int64, limit int) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	err := r.c.view(ctx, func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			if m := st.movements[i]; m.PartID == partID {
				out = append(out, &m)
			}
		}
		return nil
	})
	return page(out, limit, 0), err
}

func (r *StockMovementRepo) ListByReference(ctx context.Context, source string, referenceID int64) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	err := r.c.view(ctx, func(st *state) error {
		for _, m := range st.movements {
			if m.Source == source && m.ReferenceID == referenceID {
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}
