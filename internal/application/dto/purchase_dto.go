package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de una compra.
type PurchaseItemRequest struct {
	PartID   int64           `json:"part_id"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest entrada de POST /api/purchases. OrderDate vacío = hoy.
type CreatePurchaseRequest struct {
	SupplierID int64                 `json:"supplier_id"`
	OrderDate  string                `json:"order_date"`
	Items      []PurchaseItemRequest `json:"items"`
}

// UpdatePurchaseRequest entrada de PUT /api/purchases/:id. Items nil = no se tocan.
type UpdatePurchaseRequest struct {
	SupplierID *int64                `json:"supplier_id"`
	OrderDate  *string               `json:"order_date"`
	Items      []PurchaseItemRequest `json:"items"`
}

// PurchaseFilter query de GET /api/purchases.
type PurchaseFilter struct {
	SupplierID int64  `query:"supplier_id"`
	Status     string `query:"status"`
	From       string `query:"from"`
	To         string `query:"to"`
	PageRequest
}

// PurchaseItemResponse salida de una línea de compra.
type PurchaseItemResponse struct {
	ID        int64           `json:"id"`
	PartID    int64           `json:"part_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID         int64                  `json:"id"`
	SupplierID int64                  `json:"supplier_id"`
	UserID     int64                  `json:"user_id"`
	OrderDate  time.Time              `json:"order_date"`
	TotalValue decimal.Decimal        `json:"total_value"`
	Status     string                 `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	Items      []PurchaseItemResponse `json:"items,omitempty"`
}
