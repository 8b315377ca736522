package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condiciones de una pieza.
const (
	ConditionNew  = "new"
	ConditionUsed = "used"
)

// Part representa una pieza del catálogo.
// QuantityInStock solo lo modifica el libro de inventario (compras, ventas, cambios);
// las ediciones de catálogo nunca lo tocan.
type Part struct {
	ID              int64
	Name            string
	Description     string
	BrandID         *int64
	CategoryID      *int64
	SalePrice       decimal.Decimal
	CostPrice       decimal.Decimal
	QuantityInStock int
	MinimumQuantity int
	Condition       string // new, used
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowStock indica si la pieza está en o por debajo de su mínimo de reposición.
func (p *Part) LowStock() bool {
	return p.QuantityInStock <= p.MinimumQuantity
}
