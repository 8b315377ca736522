package entity

import "time"

// Supplier proveedor de piezas (CNPJ en TaxID).
type Supplier struct {
	ID        int64
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer cliente de la tienda (CPF en TaxID).
type Customer struct {
	ID        int64
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentMethod forma de pago aceptada en ventas.
type PaymentMethod struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}
