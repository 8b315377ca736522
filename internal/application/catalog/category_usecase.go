package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

// CategoryUseCase alta, consulta y baja lógica de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CatalogEntryRequest) (*dto.CatalogEntryResponse, error) {
	if err := cleanEntry(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	cat := &entity.Category{Name: in.Name, Description: in.Description, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return categoryResponse(cat), nil
}

func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CatalogEntryResponse, error) {
	cat, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.NotFound("categoría %d no encontrada", id)
	}
	return categoryResponse(cat), nil
}

func (uc *CategoryUseCase) List(ctx context.Context, includeInactive bool) ([]dto.CatalogEntryResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogEntryResponse, 0, len(list))
	for _, cat := range list {
		out = append(out, *categoryResponse(cat))
	}
	return out, nil
}

// Deactivate baja lógica; las piezas que la referencian la conservan.
func (uc *CategoryUseCase) Deactivate(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

// BrandUseCase alta, consulta y baja lógica de marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

func (uc *BrandUseCase) Create(ctx context.Context, in dto.CatalogEntryRequest) (*dto.CatalogEntryResponse, error) {
	if err := cleanEntry(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Brand{Name: in.Name, Description: in.Description, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return brandResponse(b), nil
}

func (uc *BrandUseCase) GetByID(ctx context.Context, id int64) (*dto.CatalogEntryResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NotFound("marca %d no encontrada", id)
	}
	return brandResponse(b), nil
}

func (uc *BrandUseCase) List(ctx context.Context, includeInactive bool) ([]dto.CatalogEntryResponse, error) {
	list, err := uc.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogEntryResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *brandResponse(b))
	}
	return out, nil
}

func (uc *BrandUseCase) Deactivate(ctx context.Context, id int64) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

func cleanEntry(in *dto.CatalogEntryRequest) error {
	if err := dto.Required("nombre", &in.Name, dto.MaxNameLen); err != nil {
		return err
	}
	return dto.Optional("descripción", &in.Description, dto.MaxDescriptionLen)
}

func categoryResponse(c *entity.Category) *dto.CatalogEntryResponse {
	return &dto.CatalogEntryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Active: c.Active, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func brandResponse(b *entity.Brand) *dto.CatalogEntryResponse {
	return &dto.CatalogEntryResponse{ID: b.ID, Name: b.Name, Description: b.Description, Active: b.Active, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}
