package entity

import "time"

// Exchange cambio de una pieza vendida. SubstitutePartID nil es una devolución pura.
type Exchange struct {
	ID               int64
	SaleID           int64
	OriginalPartID   int64
	SubstitutePartID *int64
	Quantity         int
	Reason           string
	UserID           int64
	ExchangedAt      time.Time
	Status           Status
	CancelledAt      *time.Time
}
