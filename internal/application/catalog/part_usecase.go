// Package catalog casos de uso del catálogo (piezas, formas de pago) y de terceros (clientes, proveedores).
package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

// PartUseCase CRUD de piezas. El stock solo cambia vía Ledger (saldo inicial incluido).
type PartUseCase struct {
	txRunner   inventory.TxRunner
	ledger     *inventory.Ledger
	repo       repository.PartRepository
	categories repository.CategoryRepository
	brands     repository.BrandRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	repo repository.PartRepository,
	categories repository.CategoryRepository,
	brands repository.BrandRepository,
) *PartUseCase {
	return &PartUseCase{txRunner: txRunner, ledger: ledger, repo: repo, categories: categories, brands: brands}
}

// Create crea la pieza con stock 0 y, si viene saldo inicial, lo registra como movimiento de apertura.
func (uc *PartUseCase) Create(ctx context.Context, userID int64, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if err := dto.Required("nombre", &in.Name, dto.MaxNameLen); err != nil {
		return nil, err
	}
	if err := dto.Optional("descripción", &in.Description, dto.MaxDescriptionLen); err != nil {
		return nil, err
	}
	if in.Condition == "" {
		in.Condition = entity.ConditionNew
	}
	if err := validatePart(in.Condition, in.MinimumQuantity); err != nil {
		return nil, err
	}
	if err := checkPrices(in.SalePrice, in.CostPrice); err != nil {
		return nil, err
	}
	if in.QuantityInStock < 0 {
		return nil, domain.Invalid("el stock inicial no puede ser negativo")
	}
	in.CategoryID, in.BrandID = ref(in.CategoryID), ref(in.BrandID)
	if err := uc.checkRefs(ctx, in.CategoryID, in.BrandID); err != nil {
		return nil, err
	}

	now := time.Now()
	part := &entity.Part{
		Name:            in.Name,
		Description:     in.Description,
		BrandID:         in.BrandID,
		CategoryID:      in.CategoryID,
		SalePrice:       in.SalePrice,
		CostPrice:       in.CostPrice,
		MinimumQuantity: in.MinimumQuantity,
		Condition:       in.Condition,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		if err := tx.Parts.Create(ctx, part); err != nil {
			return err
		}
		if in.QuantityInStock == 0 {
			return nil
		}
		part.QuantityInStock = in.QuantityInStock
		return uc.ledger.Increment(ctx, tx, inventory.Movement{
			PartID: part.ID, Quantity: in.QuantityInStock,
			Source: entity.SourceOpening, ReferenceID: part.ID, UserID: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByID obtiene una pieza por ID.
func (uc *PartUseCase) GetByID(ctx context.Context, id int64) (*dto.PartResponse, error) {
	part, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// Update actualiza datos de catálogo. quantity_in_stock no se toca y solo se escriben
// los campos enviados; brand_id / category_id en 0 quitan la referencia.
// La fila se bloquea para no pisar el costo promedio de una recepción concurrente.
func (uc *PartUseCase) Update(ctx context.Context, id int64, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if in.Name != nil {
		if err := dto.Required("nombre", in.Name, dto.MaxNameLen); err != nil {
			return nil, err
		}
	}
	if in.Description != nil {
		if err := dto.Optional("descripción", in.Description, dto.MaxDescriptionLen); err != nil {
			return nil, err
		}
	}
	if in.SalePrice != nil {
		if err := checkPrices(*in.SalePrice, decimal.Zero); err != nil {
			return nil, err
		}
	}
	if in.CostPrice != nil {
		if err := checkPrices(decimal.NewFromInt(1), *in.CostPrice); err != nil {
			return nil, err
		}
	}
	if err := uc.checkRefs(ctx, ref(in.CategoryID), ref(in.BrandID)); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		part, err := tx.Parts.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.NotFound("pieza %d no encontrada", id)
		}
		if in.Name != nil {
			part.Name = *in.Name
		}
		if in.Description != nil {
			part.Description = *in.Description
		}
		if in.BrandID != nil {
			part.BrandID = ref(in.BrandID)
		}
		if in.CategoryID != nil {
			part.CategoryID = ref(in.CategoryID)
		}
		if in.SalePrice != nil {
			part.SalePrice = *in.SalePrice
		}
		if in.CostPrice != nil {
			part.CostPrice = *in.CostPrice
		}
		if in.MinimumQuantity != nil {
			part.MinimumQuantity = *in.MinimumQuantity
		}
		if in.Condition != nil {
			part.Condition = *in.Condition
		}
		if err := validatePart(part.Condition, part.MinimumQuantity); err != nil {
			return err
		}
		part.UpdatedAt = time.Now()
		return tx.Parts.Update(ctx, part)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Deactivate baja lógica: la pieza sigue referenciada por compras y ventas históricas.
func (uc *PartUseCase) Deactivate(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.SetActive(ctx, id, false)
}

// List lista piezas con filtros.
func (uc *PartUseCase) List(ctx context.Context, in dto.PartFilter) ([]dto.PartResponse, error) {
	f := repository.PartFilter{
		Condition:       in.Condition,
		Search:          dto.Clean(in.Search),
		LowStock:        in.LowStock,
		IncludeInactive: in.IncludeInactive,
	}
	if in.CategoryID > 0 {
		f.CategoryID = &in.CategoryID
	}
	if in.BrandID > 0 {
		f.BrandID = &in.BrandID
	}
	if f.Condition != "" && f.Condition != entity.ConditionNew && f.Condition != entity.ConditionUsed {
		return nil, domain.Invalid("condición inválida: %s", f.Condition)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPartResponse(p))
	}
	return out, nil
}

func (uc *PartUseCase) get(ctx context.Context, id int64) (*entity.Part, error) {
	part, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.NotFound("pieza %d no encontrada", id)
	}
	return part, nil
}

// checkRefs exige que la categoría y la marca indicadas existan y estén activas.
func (uc *PartUseCase) checkRefs(ctx context.Context, categoryID, brandID *int64) error {
	if categoryID != nil {
		cat, err := uc.categories.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.NotFound("categoría %d no encontrada", *categoryID)
		}
		if !cat.Active {
			return domain.Invalid("la categoría %s está inactiva", cat.Name)
		}
	}
	if brandID != nil {
		b, err := uc.brands.GetByID(ctx, *brandID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.NotFound("marca %d no encontrada", *brandID)
		}
		if !b.Active {
			return domain.Invalid("la marca %s está inactiva", b.Name)
		}
	}
	return nil
}

// ref normaliza una referencia opcional: nil o 0 significan sin referencia.
func ref(id *int64) *int64 {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

func checkPrices(sale, cost decimal.Decimal) error {
	if !sale.IsPositive() {
		return domain.Invalid("el precio de venta debe ser mayor que cero")
	}
	if cost.IsNegative() {
		return domain.Invalid("el precio de costo no puede ser negativo")
	}
	if err := dto.Money("precio de venta", sale); err != nil {
		return err
	}
	return dto.Money("precio de costo", cost)
}

func validatePart(condition string, minimum int) error {
	if condition != entity.ConditionNew && condition != entity.ConditionUsed {
		return domain.Invalid("condición inválida: %s (new|used)", condition)
	}
	if minimum < 0 {
		return domain.Invalid("la cantidad mínima no puede ser negativa")
	}
	return nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	return &dto.PartResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		BrandID:         p.BrandID,
		CategoryID:      p.CategoryID,
		SalePrice:       p.SalePrice,
		CostPrice:       p.CostPrice,
		QuantityInStock: p.QuantityInStock,
		MinimumQuantity: p.MinimumQuantity,
		Condition:       p.Condition,
		Active:          p.Active,
		LowStock:        p.LowStock(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
