package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	CustomerID      *int64
	PaymentMethodID *int64
	Status          entity.Status
	From, To        *time.Time
	Limit           int
	Offset          int
}

// SaleRepository define el puerto de persistencia de ventas (cabecera + ítems).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	ListItems(ctx context.Context, saleID int64) ([]entity.SaleItem, error)
	DeleteItems(ctx context.Context, saleID int64) error
	// UpdateHeader guarda customer_id, payment_method_id, sold_at, discount, total_value y updated_at.
	UpdateHeader(ctx context.Context, sale *entity.Sale) error
	UpdateStatus(ctx context.Context, id int64, status entity.Status, at time.Time) error
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
