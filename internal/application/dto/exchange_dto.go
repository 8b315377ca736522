package dto

import "time"

// CreateExchangeRequest entrada de POST /api/exchanges.
// SubstitutePartID nil = devolución pura (sin pieza de reemplazo).
type CreateExchangeRequest struct {
	SaleID           int64  `json:"sale_id"`
	OriginalPartID   int64  `json:"original_part_id"`
	SubstitutePartID *int64 `json:"substitute_part_id"`
	Quantity         int    `json:"quantity"`
	Reason           string `json:"reason"`
}

// ExchangeFilter query de GET /api/exchanges.
type ExchangeFilter struct {
	SaleID int64  `query:"sale_id"`
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
	PageRequest
}

// ExchangeResponse salida de un cambio.
type ExchangeResponse struct {
	ID               int64      `json:"id"`
	SaleID           int64      `json:"sale_id"`
	OriginalPartID   int64      `json:"original_part_id"`
	SubstitutePartID *int64     `json:"substitute_part_id"`
	Quantity         int        `json:"quantity"`
	Reason           string     `json:"reason"`
	UserID           int64      `json:"user_id"`
	ExchangedAt      time.Time  `json:"exchanged_at"`
	Status           string     `json:"status"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
}
