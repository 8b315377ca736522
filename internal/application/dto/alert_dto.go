package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockAlertDTO pieza activa en o por debajo de su mínimo, con sugerencia de reposición.
type LowStockAlertDTO struct {
	PartID          int64           `json:"part_id"`
	Name            string          `json:"name"`
	QuantityInStock int             `json:"quantity_in_stock"`
	MinimumQuantity int             `json:"minimum_quantity"`
	Gap             int             `json:"gap"`           // stock - mínimo (≤ 0)
	SuggestedQty    int             `json:"suggested_qty"` // hasta 1.5 × mínimo
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
}

// PendingOrderDTO venta o compra que sigue en pending.
type PendingOrderDTO struct {
	ID         int64           `json:"id"`
	PartyID    int64           `json:"party_id"` // cliente o proveedor
	Date       time.Time       `json:"date"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// AlertCountsDTO respuesta de GET /api/alerts/count.
type AlertCountsDTO struct {
	LowStock         int `json:"low_stock"`
	PendingSales     int `json:"pending_sales"`
	PendingPurchases int `json:"pending_purchases"`
	Total            int `json:"total"`
}

// AlertsDTO respuesta de GET /api/alerts.
type AlertsDTO struct {
	LowStock         []LowStockAlertDTO `json:"low_stock"`
	PendingSales     []PendingOrderDTO  `json:"pending_sales"`
	PendingPurchases []PendingOrderDTO  `json:"pending_purchases"`
	Summary          AlertCountsDTO     `json:"summary"`
}
