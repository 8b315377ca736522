package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ActiveParts     int `json:"active_parts"`
	LowStockParts   int `json:"low_stock_parts"`
	ActiveCustomers int `json:"active_customers"`
	ActiveSuppliers int `json:"active_suppliers"`

	// Mes en curso: ventas completadas y compras recibidas.
	MonthlySalesCount     int             `json:"monthly_sales_count"`
	MonthlySalesValue     decimal.Decimal `json:"monthly_sales_value"`
	MonthlyPurchasesCount int             `json:"monthly_purchases_count"`
	MonthlyPurchasesValue decimal.Decimal `json:"monthly_purchases_value"`

	DateLabel string `json:"date_label"` // ej: "Octubre 2026"
}

// ActivityDTO una venta o compra en GET /api/dashboard/recent.
type ActivityDTO struct {
	Kind       string          `json:"kind"` // sale | purchase
	ID         int64           `json:"id"`
	PartyName  string          `json:"party_name"`
	Date       time.Time       `json:"date"`
	TotalValue decimal.Decimal `json:"total_value"`
	Status     string          `json:"status"`
}
