package dto

import "time"

// CatalogEntryRequest entrada para crear una categoría o una marca.
type CatalogEntryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CatalogEntryResponse salida de una categoría o una marca.
type CatalogEntryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
