package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest entrada para crear una pieza. QuantityInStock es el saldo inicial
// y queda registrado en el ledger como movimiento de apertura.
type CreatePartRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BrandID         *int64          `json:"brand_id"`
	CategoryID      *int64          `json:"category_id"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	MinimumQuantity int             `json:"minimum_quantity"`
	Condition       string          `json:"condition"`
}

// UpdatePartRequest entrada para actualizar una pieza (sin stock: solo lo mueven los flujos).
type UpdatePartRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	BrandID         *int64           `json:"brand_id"`
	CategoryID      *int64           `json:"category_id"`
	SalePrice       *decimal.Decimal `json:"sale_price"`
	CostPrice       *decimal.Decimal `json:"cost_price"`
	MinimumQuantity *int             `json:"minimum_quantity"`
	Condition       *string          `json:"condition"`
}

// PartFilter query de GET /api/parts.
type PartFilter struct {
	CategoryID      int64  `query:"category_id"`
	BrandID         int64  `query:"brand_id"`
	Condition       string `query:"condition"`
	Search          string `query:"search"`
	LowStock        bool   `query:"low_stock"`
	IncludeInactive bool   `query:"include_inactive"`
}

// PartResponse salida de una pieza.
type PartResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BrandID         *int64          `json:"brand_id"`
	CategoryID      *int64          `json:"category_id"`
	SalePrice       decimal.Decimal `json:"sale_price"`
	CostPrice       decimal.Decimal `json:"cost_price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	MinimumQuantity int             `json:"minimum_quantity"`
	Condition       string          `json:"condition"`
	Active          bool            `json:"active"`
	LowStock        bool            `json:"low_stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StockMovementResponse salida de un movimiento del ledger.
type StockMovementResponse struct {
	ID             int64     `json:"id"`
	TransactionRef string    `json:"transaction_ref"`
	PartID         int64     `json:"part_id"`
	Direction      string    `json:"direction"`
	Quantity       int       `json:"quantity"`
	Source         string    `json:"source"`
	ReferenceID    int64     `json:"reference_id"`
	UserID         int64     `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
