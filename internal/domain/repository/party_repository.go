package repository

import (
	"context"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Supplier, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// CustomerRepository define el puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Customer, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// PaymentMethodRepository define el puerto de persistencia de formas de pago.
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	GetByID(ctx context.Context, id int64) (*entity.PaymentMethod, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.PaymentMethod, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
