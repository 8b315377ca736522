package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase pedido de compra a un proveedor.
// TotalValue = Σ Quantity × UnitCost de sus ítems.
type Purchase struct {
	ID         int64
	SupplierID int64
	UserID     int64
	OrderDate  time.Time
	TotalValue decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []PurchaseItem
}

// PurchaseItem línea de una compra.
type PurchaseItem struct {
	ID         int64
	PurchaseID int64
	PartID     int64
	Quantity   int
	UnitCost   decimal.Decimal
}
