package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BrandRepository    = (*BrandRepo)(nil)
)

// CategoryRepo categorías en memoria. El nombre es único sin distinguir mayúsculas.
type CategoryRepo struct {
	c conn
}

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(store *Store) *CategoryRepo {
	return &CategoryRepo{c: conn{store: store}}
}

func (r *CategoryRepo) Create(ctx context.Context, cat *entity.Category) error {
	return r.c.update(ctx, func(st *state) error {
		for _, cur := range st.categories {
			if strings.EqualFold(cur.Name, cat.Name) {
				return &domain.Error{Kind: domain.ErrDuplicate, Message: "ya existe una categoría con ese nombre"}
			}
		}
		cat.ID = st.next("categories")
		st.categories[cat.ID] = *cat
		return nil
	})
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.c.view(ctx, func(st *state) error {
		if cat, ok := st.categories[id]; ok {
			out = &cat
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Category, error) {
	out := []*entity.Category{}
	err := r.c.view(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.categories) {
			if cat := st.categories[id]; includeInactive || cat.Active {
				out = append(out, &cat)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r *CategoryRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.c.update(ctx, func(st *state) error {
		cat, ok := st.categories[id]
		if !ok {
			return domain.ErrNotFound
		}
		cat.Active = active
		st.categories[id] = cat
		return nil
	})
}

// BrandRepo marcas en memoria.
type BrandRepo struct {
	c conn
}

// NewBrandRepository construye el repositorio.
func NewBrandRepository(store *Store) *BrandRepo {
	return &BrandRepo{c: conn{store: store}}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	return r.c.update(ctx, func(st *state) error {
		for _, cur := range st.brands {
			if strings.EqualFold(cur.Name, b.Name) {
				return &domain.Error{Kind: domain.ErrDuplicate, Message: "ya existe una marca con ese nombre"}
			}
		}
		b.ID = st.next("brands")
		st.brands[b.ID] = *b
		return nil
	})
}

func (r *BrandRepo) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	var out *entity.Brand
	err := r.c.view(ctx, func(st *state) error {
		if b, ok := st.brands[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BrandRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Brand, error) {
	out := []*entity.Brand{}
	err := r.c.view(ctx, func(st *state) error {
		for _, id := range sortedIDs(st.brands) {
			if b := st.brands[id]; includeInactive || b.Active {
				out = append(out, &b)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r *BrandRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return r.c.update(ctx, func(st *state) error {
		b, ok := st.brands[id]
		if !ok {
			return domain.ErrNotFound
		}
		b.Active = active
		st.brands[id] = b
		return nil
	})
}
