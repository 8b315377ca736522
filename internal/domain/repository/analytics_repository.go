package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// CatalogCounts conteos del catálogo para el dashboard.
type CatalogCounts struct {
	ActiveParts     int
	LowStockParts   int
	ActiveCustomers int
	ActiveSuppliers int
}

// PeriodTotals cantidad de documentos y valor acumulado en un rango.
type PeriodTotals struct {
	Count int
	Value decimal.Decimal
}

// ActivityEntry una venta o compra reciente, tal como la muestra el dashboard.
type ActivityEntry struct {
	Kind       string // "sale" | "purchase"
	ID         int64
	PartyName  string // cliente o proveedor
	Date       time.Time
	TotalValue decimal.Decimal
	Status     entity.Status
}

// AnalyticsRepository consultas read-only del dashboard.
type AnalyticsRepository interface {
	CatalogCounts(ctx context.Context) (CatalogCounts, error)
	// SalesTotals suma las ventas en status dentro de [from, to).
	SalesTotals(ctx context.Context, status entity.Status, from, to time.Time) (PeriodTotals, error)
	// PurchaseTotals suma las compras en status dentro de [from, to).
	PurchaseTotals(ctx context.Context, status entity.Status, from, to time.Time) (PeriodTotals, error)
	// RecentActivity últimas ventas y compras mezcladas, más recientes primero.
	RecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error)
}
