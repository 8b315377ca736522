package repository

import (
	"context"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// PartFilter filtros del listado de piezas. Los nil/vacíos no filtran.
type PartFilter struct {
	CategoryID      *int64
	BrandID         *int64
	Condition       string
	Search          string
	LowStock        bool // solo quantity_in_stock <= minimum_quantity
	IncludeInactive bool
}

// PartRepository define el puerto de persistencia del catálogo de piezas.
// Nunca modifica quantity_in_stock salvo en Create (saldo inicial): el stock lo mueve StockRepository.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Part, error)
	// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, filter PartFilter) ([]*entity.Part, error)
}
