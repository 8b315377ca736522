// Package pricing concentra la aritmética monetaria de compras y ventas (servicio de dominio).
// Todo en decimal: nunca float para montos.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// LineCost = Quantity × UnitCost.
func LineCost(it entity.PurchaseItem) decimal.Decimal {
	return decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitCost)
}

// PurchaseTotal = Σ Quantity × UnitCost.
func PurchaseTotal(items []entity.PurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineCost(it))
	}
	return total
}

// LineSubtotal = Quantity × UnitPrice − ItemDiscount.
func LineSubtotal(it entity.SaleItem) decimal.Decimal {
	return decimal.NewFromInt(int64(it.Quantity)).Mul(it.UnitPrice).Sub(it.ItemDiscount)
}

// SaleTotal = Σ (Quantity × UnitPrice − ItemDiscount) − discount.
// Puede ser negativo; quien llama decide si lo rechaza.
func SaleTotal(items []entity.SaleItem, discount decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineSubtotal(it))
	}
	return total.Sub(discount)
}
