package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta. ItemDiscount es opcional (0 por defecto).
type SaleItemRequest struct {
	PartID       int64           `json:"part_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
	Note         string          `json:"note"`
}

// CreateSaleRequest entrada de POST /api/sales. SoldAt vacío = ahora.
type CreateSaleRequest struct {
	CustomerID      int64             `json:"customer_id"`
	PaymentMethodID int64             `json:"payment_method_id"`
	SoldAt          string            `json:"sold_at"`
	Discount        decimal.Decimal   `json:"discount"`
	Items           []SaleItemRequest `json:"items"`
}

// UpdateSaleRequest entrada de PUT /api/sales/:id. Campos nil = sin cambios.
type UpdateSaleRequest struct {
	CustomerID      *int64            `json:"customer_id"`
	PaymentMethodID *int64            `json:"payment_method_id"`
	SoldAt          *string           `json:"sold_at"`
	Discount        *decimal.Decimal  `json:"discount"`
	Items           []SaleItemRequest `json:"items"`
}

// SaleFilter query de GET /api/sales.
type SaleFilter struct {
	CustomerID      int64  `query:"customer_id"`
	PaymentMethodID int64  `query:"payment_method_id"`
	Status          string `query:"status"`
	From            string `query:"from"`
	To              string `query:"to"`
	PageRequest
}

// SaleItemResponse salida de una línea de venta.
type SaleItemResponse struct {
	ID           int64           `json:"id"`
	PartID       int64           `json:"part_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ItemDiscount decimal.Decimal `json:"item_discount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Note         string          `json:"note,omitempty"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID              int64              `json:"id"`
	CustomerID      int64              `json:"customer_id"`
	UserID          int64              `json:"user_id"`
	PaymentMethodID int64              `json:"payment_method_id"`
	SoldAt          time.Time          `json:"sold_at"`
	Discount        decimal.Decimal    `json:"discount"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	Status          string             `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Items           []SaleItemResponse `json:"items,omitempty"`
}
