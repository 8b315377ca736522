package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// ExchangeFilter filtros del listado de cambios.
type ExchangeFilter struct {
	SaleID   *int64
	Status   entity.Status
	From, To *time.Time
	Limit    int
	Offset   int
}

// ExchangeRepository define el puerto de persistencia de cambios/devoluciones.
type ExchangeRepository interface {
	Create(ctx context.Context, exchange *entity.Exchange) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Exchange, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Exchange, error)
	// Cancel marca el cambio como cancelado con la fecha dada.
	Cancel(ctx context.Context, id int64, at time.Time) error
	List(ctx context.Context, filter ExchangeFilter) ([]*entity.Exchange, error)
	// SumActiveQuantity suma las cantidades de los cambios activos de una venta para una pieza original.
	SumActiveQuantity(ctx context.Context, saleID, partID int64) (int, error)
}
