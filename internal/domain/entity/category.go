package entity

import "time"

// Category categoría de piezas (Memoria, Almacenamiento...). El nombre es único.
type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Brand marca o fabricante. El nombre es único.
type Brand struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
