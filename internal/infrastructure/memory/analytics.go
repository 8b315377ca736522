package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas del dashboard sobre el store en memoria.
type AnalyticsRepo struct {
	c conn
}

// NewAnalyticsRepository construye el repositorio de solo lectura.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{c: conn{store: store}}
}

func (r *AnalyticsRepo) CatalogCounts(ctx context.Context) (repository.CatalogCounts, error) {
	var out repository.CatalogCounts
	err := r.c.view(ctx, func(st *state) error {
		for _, p := range st.parts {
			if !p.Active {
				continue
			}
			out.ActiveParts++
			if p.LowStock() {
				out.LowStockParts++
			}
		}
		for _, c := range st.customers {
			if c.Active {
				out.ActiveCustomers++
			}
		}
		for _, s := range st.suppliers {
			if s.Active {
				out.ActiveSuppliers++
			}
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) SalesTotals(ctx context.Context, status entity.Status, from, to time.Time) (repository.PeriodTotals, error) {
	out := repository.PeriodTotals{Value: decimal.Zero}
	err := r.c.view(ctx, func(st *state) error {
		for _, s := range st.sales {
			if s.Status == status && !s.SoldAt.Before(from) && s.SoldAt.Before(to) {
				out.Count++
				out.Value = out.Value.Add(s.TotalValue)
			}
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) PurchaseTotals(ctx context.Context, status entity.Status, from, to time.Time) (repository.PeriodTotals, error) {
	out := repository.PeriodTotals{Value: decimal.Zero}
	err := r.c.view(ctx, func(st *state) error {
		for _, p := range st.purchases {
			if p.Status == status && !p.OrderDate.Before(from) && p.OrderDate.Before(to) {
				out.Count++
				out.Value = out.Value.Add(p.TotalValue)
			}
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) RecentActivity(ctx context.Context, limit int) ([]repository.ActivityEntry, error) {
	out := []repository.ActivityEntry{}
	err := r.c.view(ctx, func(st *state) error {
		for _, s := range st.sales {
			out = append(out, repository.ActivityEntry{
				Kind: "sale", ID: s.ID, PartyName: st.customers[s.CustomerID].Name,
				Date: s.SoldAt, TotalValue: s.TotalValue, Status: s.Status,
			})
		}
		for _, p := range st.purchases {
			out = append(out, repository.ActivityEntry{
				Kind: "purchase", ID: p.ID, PartyName: st.suppliers[p.SupplierID].Name,
				Date: p.OrderDate, TotalValue: p.TotalValue, Status: p.Status,
			})
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return page(out, limit, 0), err
}
