package dto

import "time"

// CreatePartyRequest entrada para crear un cliente o proveedor.
type CreatePartyRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PartyResponse salida de un cliente o proveedor.
type PartyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePaymentMethodRequest entrada para crear una forma de pago.
type CreatePaymentMethodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PaymentMethodResponse salida de una forma de pago.
type PaymentMethodResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
