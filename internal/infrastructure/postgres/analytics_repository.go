package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CatalogCounts conteos en una sola pasada con subconsultas escalares.
func (r *AnalyticsRepo) CatalogCounts(ctx context.Context) (repository.CatalogCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM parts     WHERE active)                                          AS active_parts,
	    (SELECT COUNT(*) FROM parts     WHERE active AND quantity_in_stock <= minimum_quantity) AS low_stock_parts,
	    (SELECT COUNT(*) FROM customers WHERE active)                                          AS active_customers,
	    (SELECT COUNT(*) FROM suppliers WHERE active)                                          AS active_suppliers`

	var c repository.CatalogCounts
	if err := r.q.QueryRow(ctx, query).Scan(&c.ActiveParts, &c.LowStockParts, &c.ActiveCustomers, &c.ActiveSuppliers); err != nil {
		return c, fmt.Errorf("catalog counts: %w", err)
	}
	return c, nil
}

func (r *AnalyticsRepo) SalesTotals(ctx context.Context, status entity.Status, from, to time.Time) (repository.PeriodTotals, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(total_value), 0)
	FROM sales
	WHERE status = $1 AND sold_at >= $2 AND sold_at < $3`

	var t repository.PeriodTotals
	if err := r.q.QueryRow(ctx, query, status, from, to).Scan(&t.Count, &t.Value); err != nil {
		return t, fmt.Errorf("sales totals: %w", err)
	}
	return t, nil
}

func (r *AnalyticsRepo) PurchaseTotals(ctx context.Context, status entity.Status, from, to time.Time) (repository.PeriodTotals, error) {
	const query = `
	SELECT COUNT(*), COALESCE(SUM(total_value), 0)
	FROM purchases
	WHERE status = $1 AND order_date >= $2 AND order_date < $3`

	var t repository.PeriodTotals
	if err := r.q.QueryRow(ctx, query, status, from, to).Scan(&t.Count, &t.Value); err != nil {
		return t, fmt.Errorf("purchase totals: %w", err)
	}
	return t, nil
}

// RecentActivity mezcla ventas y compras con UNION ALL, más recientes primero.
func (r *AnalyticsRepo) RecentActivity(ctx context.Context, limit int) ([]repository.ActivityEntry, error) {
	const query = `
	SELECT kind, id, party_name, date, total_value, status FROM (
	    SELECT 'sale' AS kind, s.id, c.name AS party_name, s.sold_at AS date, s.total_value, s.status
	    FROM sales s JOIN customers c ON c.id = s.customer_id
	    UNION ALL
	    SELECT 'purchase', p.id, sp.name, p.order_date, p.total_value, p.status
	    FROM purchases p JOIN suppliers sp ON sp.id = p.supplier_id
	) activity
	ORDER BY date DESC, id DESC
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()
	out := []repository.ActivityEntry{}
	for rows.Next() {
		var e repository.ActivityEntry
		if err := rows.Scan(&e.Kind, &e.ID, &e.PartyName, &e.Date, &e.TotalValue, &e.Status); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
