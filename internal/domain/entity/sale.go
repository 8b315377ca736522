package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta a un cliente.
// TotalValue = Σ (Quantity × UnitPrice − ItemDiscount) − Discount.
type Sale struct {
	ID              int64
	CustomerID      int64
	UserID          int64
	PaymentMethodID int64
	SoldAt          time.Time
	TotalValue      decimal.Decimal
	Discount        decimal.Decimal
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []SaleItem
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID           int64
	SaleID       int64
	PartID       int64
	Quantity     int
	UnitPrice    decimal.Decimal
	ItemDiscount decimal.Decimal
	Note         string
}

// QuantityOf suma la cantidad vendida de partID en todas las líneas de la venta.
func (s *Sale) QuantityOf(partID int64) (int, bool) {
	total, found := 0, false
	for _, it := range s.Items {
		if it.PartID == partID {
			total += it.Quantity
			found = true
		}
	}
	return total, found
}
