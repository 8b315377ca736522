// Package purchase implementa el flujo de compras a proveedores:
// pending → received (entra stock) | cancelled.
package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/pricing"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// UseCase casos de uso de compras. Toda escritura corre dentro de TxRunner.Run.
type UseCase struct {
	txRunner     inventory.TxRunner
	ledger       *inventory.Ledger
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	purchaseRepo repository.PurchaseRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		purchaseRepo: purchaseRepo,
		log:          log,
		now:          time.Now,
	}
}

// Create registra una compra en estado pending con sus ítems. No mueve stock.
func (uc *UseCase) Create(ctx context.Context, userID int64, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID <= 0 {
		return nil, domain.Invalid("proveedor es obligatorio")
	}
	items, err := toItems(in.Items)
	if err != nil {
		return nil, err
	}
	orderDate, err := dto.ParseDate("order_date", in.OrderDate)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Purchase{
		SupplierID: in.SupplierID,
		UserID:     userID,
		OrderDate:  now,
		TotalValue: pricing.PurchaseTotal(items),
		Status:     entity.PurchaseLifecycle.Initial,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if orderDate != nil {
		p.OrderDate = *orderDate
	}

	err = uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		if err := checkSupplier(ctx, tx, p.SupplierID); err != nil {
			return err
		}
		if err := checkParts(ctx, tx, items); err != nil {
			return err
		}
		if err := tx.Purchases.Create(ctx, p); err != nil {
			return err
		}
		return insertItems(ctx, tx, p, items)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("purchase_id", p.ID).Str("total", p.TotalValue.StringFixed(2)).Msg("compra registrada")
	return toResponse(p), nil
}

// Update modifica proveedor, fecha o ítems de una compra pending.
// Si vienen ítems, se validan todos antes de borrar los anteriores y el total se recalcula.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	var items []entity.PurchaseItem
	if in.Items != nil {
		var err error
		if items, err = toItems(in.Items); err != nil {
			return nil, err
		}
	}
	var orderDate *time.Time
	if in.OrderDate != nil {
		var err error
		if orderDate, err = dto.ParseDate("order_date", *in.OrderDate); err != nil {
			return nil, err
		}
	}

	var out *entity.Purchase
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		p, err := lockPurchase(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := entity.PurchaseLifecycle.Editable(p.Status); err != nil {
			return err
		}
		if in.SupplierID != nil && *in.SupplierID != p.SupplierID {
			if err := checkSupplier(ctx, tx, *in.SupplierID); err != nil {
				return err
			}
			p.SupplierID = *in.SupplierID
		}
		if orderDate != nil {
			p.OrderDate = *orderDate
		}
		if items != nil {
			if err := checkParts(ctx, tx, items); err != nil {
				return err
			}
			if err := tx.Purchases.DeleteItems(ctx, p.ID); err != nil {
				return err
			}
			if err := insertItems(ctx, tx, p, items); err != nil {
				return err
			}
		} else {
			if p.Items, err = tx.Purchases.ListItems(ctx, p.ID); err != nil {
				return err
			}
		}
		p.TotalValue = pricing.PurchaseTotal(p.Items)
		p.UpdatedAt = uc.now()
		if err := tx.Purchases.UpdateHeader(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("purchase_id", id).Msg("compra actualizada")
	return toResponse(out), nil
}

// Receive pasa la compra a received, recalcula el costo promedio y suma al stock la cantidad de cada línea, todo en una transacción.
func (uc *UseCase) Receive(ctx context.Context, userID, id int64) (*dto.PurchaseResponse, error) {
	var out *entity.Purchase
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		p, err := lockPurchase(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := entity.PurchaseLifecycle.Transition(p.Status, entity.StatusReceived); err != nil {
			return err
		}
		if p.Items, err = tx.Purchases.ListItems(ctx, p.ID); err != nil {
			return err
		}
		now := uc.now()
		if err := tx.Purchases.UpdateStatus(ctx, p.ID, entity.StatusReceived, now); err != nil {
			return err
		}
		ref := inventory.NewTransactionRef()
		for _, it := range p.Items {
			if err := updateCost(ctx, tx, it, now); err != nil {
				return err
			}
			err := uc.ledger.Increment(ctx, tx, inventory.Movement{
				TransactionRef: ref,
				PartID:         it.PartID,
				Quantity:       it.Quantity,
				Source:         entity.SourcePurchaseReceipt,
				ReferenceID:    p.ID,
				UserID:         userID,
			})
			if err != nil {
				return err
			}
		}
		p.Status, p.UpdatedAt = entity.StatusReceived, now
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("purchase_id", id).Int("lines", len(out.Items)).Msg("compra recibida")
	return toResponse(out), nil
}

// updateCost recalcula cost_price como promedio ponderado antes de sumar la entrada al stock.
// La fila queda bloqueada: dos recepciones de la misma pieza se serializan.
func updateCost(ctx context.Context, tx *repository.Tx, it entity.PurchaseItem, now time.Time) error {
	part, err := tx.Parts.GetForUpdate(ctx, it.PartID)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.NotFound("pieza %d no encontrada", it.PartID)
	}
	part.CostPrice = pricing.AverageCost(part.QuantityInStock, part.CostPrice, it.Quantity, it.UnitCost)
	part.UpdatedAt = now
	return tx.Parts.Update(ctx, part)
}

// Cancel cancela una compra pending. Sin efecto en inventario.
func (uc *UseCase) Cancel(ctx context.Context, id int64) (*dto.PurchaseResponse, error) {
	var out *entity.Purchase
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		p, err := lockPurchase(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := entity.PurchaseLifecycle.Transition(p.Status, entity.StatusCancelled); err != nil {
			return err
		}
		now := uc.now()
		if err := tx.Purchases.UpdateStatus(ctx, p.ID, entity.StatusCancelled, now); err != nil {
			return err
		}
		p.Status, p.UpdatedAt = entity.StatusCancelled, now
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("purchase_id", id).Msg("compra cancelada")
	return toResponse(out), nil
}

// GetByID devuelve la compra con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("compra %d no encontrada", id)
	}
	if p.Items, err = uc.purchaseRepo.ListItems(ctx, id); err != nil {
		return nil, err
	}
	return toResponse(p), nil
}

// ListItems devuelve solo las líneas de la compra.
func (uc *UseCase) ListItems(ctx context.Context, id int64) ([]dto.PurchaseItemResponse, error) {
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Items, nil
}

// List lista compras (sin ítems) con filtros de proveedor, estado y rango de fechas.
func (uc *UseCase) List(ctx context.Context, in dto.PurchaseFilter) ([]dto.PurchaseResponse, error) {
	in.DefaultPage()
	f := repository.PurchaseFilter{Limit: in.Limit, Offset: in.Offset}
	if in.SupplierID > 0 {
		f.SupplierID = &in.SupplierID
	}
	if in.Status != "" {
		f.Status = entity.Status(in.Status)
		if !entity.PurchaseLifecycle.Valid(f.Status) {
			return nil, domain.Invalid("estado de compra inválido: %s", in.Status)
		}
	}
	var err error
	if f.From, err = dto.ParseDate("from", in.From); err != nil {
		return nil, err
	}
	to, err := dto.ParseDate("to", in.To)
	if err != nil {
		return nil, err
	}
	f.To = dto.EndOfDay(to)

	list, err := uc.purchaseRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toResponse(p))
	}
	return out, nil
}

func lockPurchase(ctx context.Context, tx *repository.Tx, id int64) (*entity.Purchase, error) {
	p, err := tx.Purchases.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("compra %d no encontrada", id)
	}
	return p, nil
}

func toItems(in []dto.PurchaseItemRequest) ([]entity.PurchaseItem, error) {
	if len(in) == 0 {
		return nil, domain.Invalid("la compra debe tener al menos un ítem")
	}
	items := make([]entity.PurchaseItem, 0, len(in))
	for i, it := range in {
		switch {
		case it.PartID <= 0:
			return nil, domain.Invalid("ítem %d: pieza es obligatoria", i+1)
		case it.Quantity <= 0:
			return nil, domain.Invalid("ítem %d: la cantidad debe ser mayor que cero", i+1)
		case !it.UnitCost.IsPositive():
			return nil, domain.Invalid("ítem %d: el costo unitario debe ser mayor que cero", i+1)
		}
		if err := dto.Money(fmt.Sprintf("ítem %d: costo unitario", i+1), it.UnitCost); err != nil {
			return nil, err
		}
		items = append(items, entity.PurchaseItem{PartID: it.PartID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	if err := dto.Money("total de la compra", pricing.PurchaseTotal(items)); err != nil {
		return nil, err
	}
	return items, nil
}

func checkSupplier(ctx context.Context, tx *repository.Tx, id int64) error {
	s, err := tx.Suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil || !s.Active {
		return domain.Invalid("proveedor %d no encontrado o inactivo", id)
	}
	return nil
}

func checkParts(ctx context.Context, tx *repository.Tx, items []entity.PurchaseItem) error {
	for _, it := range items {
		part, err := tx.Parts.GetByID(ctx, it.PartID)
		if err != nil {
			return err
		}
		if part == nil || !part.Active {
			return domain.Invalid("pieza %d no encontrada o inactiva", it.PartID)
		}
	}
	return nil
}

func insertItems(ctx context.Context, tx *repository.Tx, p *entity.Purchase, items []entity.PurchaseItem) error {
	p.Items = make([]entity.PurchaseItem, 0, len(items))
	for _, it := range items {
		it.PurchaseID = p.ID
		if err := tx.Purchases.CreateItem(ctx, &it); err != nil {
			return err
		}
		p.Items = append(p.Items, it)
	}
	return nil
}

func toResponse(p *entity.Purchase) *dto.PurchaseResponse {
	out := &dto.PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		UserID:     p.UserID,
		OrderDate:  p.OrderDate,
		TotalValue: p.TotalValue,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	for _, it := range p.Items {
		out.Items = append(out.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			PartID:    it.PartID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			LineTotal: pricing.LineCost(it),
		})
	}
	return out
}
