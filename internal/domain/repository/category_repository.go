package repository

import (
	"context"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve nil, nil si no existe.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Category, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Brand, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
