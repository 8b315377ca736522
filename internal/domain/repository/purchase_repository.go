package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// PurchaseFilter filtros del listado de compras.
type PurchaseFilter struct {
	SupplierID *int64
	Status     entity.Status
	From, To   *time.Time
	Limit      int
	Offset     int
}

// PurchaseRepository define el puerto de persistencia de compras (cabecera + ítems).
// Los métodos de lectura devuelven la cabecera sin Items; ListItems los trae aparte.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Purchase, error)
	// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Purchase, error)
	ListItems(ctx context.Context, purchaseID int64) ([]entity.PurchaseItem, error)
	DeleteItems(ctx context.Context, purchaseID int64) error
	// UpdateHeader guarda supplier_id, order_date, total_value y updated_at.
	UpdateHeader(ctx context.Context, purchase *entity.Purchase) error
	UpdateStatus(ctx context.Context, id int64, status entity.Status, at time.Time) error
	List(ctx context.Context, filter PurchaseFilter) ([]*entity.Purchase, error)
}
