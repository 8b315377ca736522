// Package sale implementa el flujo de ventas: pending → completed | cancelled.
//
// El stock se descuenta al crear la venta (UPDATE condicional atómico) y se
// devuelve al cancelarla; completar la venta no mueve inventario.
package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/pricing"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	txRunner inventory.TxRunner
	ledger   *inventory.Ledger
	saleRepo repository.SaleRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		ledger:   ledger,
		saleRepo: saleRepo,
		log:      log,
		now:      time.Now,
	}
}

// Create registra la venta en pending y descuenta el stock de cada línea en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, userID int64, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID <= 0 {
		return nil, domain.Invalid("cliente es obligatorio")
	}
	if in.PaymentMethodID <= 0 {
		return nil, domain.Invalid("forma de pago es obligatoria")
	}
	if err := checkDiscount(in.Discount); err != nil {
		return nil, err
	}
	items, err := toItems(in.Items)
	if err != nil {
		return nil, err
	}
	total := pricing.SaleTotal(items, in.Discount)
	if err := checkTotal(total); err != nil {
		return nil, err
	}
	soldAt, err := dto.ParseDate("sold_at", in.SoldAt)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	s := &entity.Sale{
		CustomerID:      in.CustomerID,
		UserID:          userID,
		PaymentMethodID: in.PaymentMethodID,
		SoldAt:          now,
		Discount:        in.Discount,
		TotalValue:      total,
		Status:          entity.SaleLifecycle.Initial,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if soldAt != nil {
		s.SoldAt = *soldAt
	}

	err = uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		if err := checkCustomer(ctx, tx, s.CustomerID); err != nil {
			return err
		}
		if err := checkPaymentMethod(ctx, tx, s.PaymentMethodID); err != nil {
			return err
		}
		if err := checkStock(ctx, tx, items, nil); err != nil {
			return err
		}
		if err := tx.Sales.Create(ctx, s); err != nil {
			return err
		}
		if err := insertItems(ctx, tx, s, items); err != nil {
			return err
		}
		return uc.move(ctx, tx, s, userID, inventory.NewTransactionRef(), nil, s.Items)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("sale_id", s.ID).Str("total", s.TotalValue.StringFixed(2)).Msg("venta registrada")
	return toResponse(s), nil
}

// Update modifica una venta pending. Con ítems nuevos, devuelve el stock de las líneas
// anteriores y descuenta el de las nuevas en la misma transacción.
func (uc *UseCase) Update(ctx context.Context, userID, id int64, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	var items []entity.SaleItem
	if in.Items != nil {
		var err error
		if items, err = toItems(in.Items); err != nil {
			return nil, err
		}
	}
	if in.Discount != nil {
		if err := checkDiscount(*in.Discount); err != nil {
			return nil, err
		}
	}
	var soldAt *time.Time
	if in.SoldAt != nil {
		var err error
		if soldAt, err = dto.ParseDate("sold_at", *in.SoldAt); err != nil {
			return nil, err
		}
	}

	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		s, err := lockSale(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := entity.SaleLifecycle.Editable(s.Status); err != nil {
			return err
		}
		if in.CustomerID != nil && *in.CustomerID != s.CustomerID {
			if err := checkCustomer(ctx, tx, *in.CustomerID); err != nil {
				return err
			}
			s.CustomerID = *in.CustomerID
		}
		if in.PaymentMethodID != nil && *in.PaymentMethodID != s.PaymentMethodID {
			if err := checkPaymentMethod(ctx, tx, *in.PaymentMethodID); err != nil {
				return err
			}
			s.PaymentMethodID = *in.PaymentMethodID
		}
		if soldAt != nil {
			s.SoldAt = *soldAt
		}
		if in.Discount != nil {
			s.Discount = *in.Discount
		}
		previous, err := tx.Sales.ListItems(ctx, s.ID)
		if err != nil {
			return err
		}
		s.Items = previous
		if items != nil {
			s.Items = items
		}
		s.TotalValue = pricing.SaleTotal(s.Items, s.Discount)
		if err := checkTotal(s.TotalValue); err != nil {
			return err
		}
		s.UpdatedAt = uc.now()

		if items != nil {
			// El stock de las líneas actuales vuelve a estar disponible para las nuevas.
			if err := checkStock(ctx, tx, items, previous); err != nil {
				return err
			}
			if err := tx.Sales.DeleteItems(ctx, s.ID); err != nil {
				return err
			}
			if err := insertItems(ctx, tx, s, items); err != nil {
				return err
			}
		}
		if err := tx.Sales.UpdateHeader(ctx, s); err != nil {
			return err
		}
		if items != nil {
			if err := uc.move(ctx, tx, s, userID, inventory.NewTransactionRef(), previous, s.Items); err != nil {
				return err
			}
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("sale_id", id).Msg("venta actualizada")
	return toResponse(out), nil
}

// Complete cierra la venta. Sin efecto en inventario (el stock salió al crearla).
func (uc *UseCase) Complete(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	out, err := uc.transition(ctx, id, entity.StatusCompleted, nil)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("sale_id", id).Msg("venta completada")
	return out, nil
}

// Cancel cancela una venta pending y devuelve al stock las cantidades de sus líneas.
func (uc *UseCase) Cancel(ctx context.Context, userID, id int64) (*dto.SaleResponse, error) {
	out, err := uc.transition(ctx, id, entity.StatusCancelled, func(tx *repository.Tx, s *entity.Sale) error {
		return uc.move(ctx, tx, s, userID, inventory.NewTransactionRef(), s.Items, nil)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("sale_id", id).Msg("venta cancelada")
	return out, nil
}

func (uc *UseCase) transition(ctx context.Context, id int64, to entity.Status, after func(tx *repository.Tx, s *entity.Sale) error) (*dto.SaleResponse, error) {
	var out *entity.Sale
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		s, err := lockSale(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := entity.SaleLifecycle.Transition(s.Status, to); err != nil {
			return err
		}
		if s.Items, err = tx.Sales.ListItems(ctx, s.ID); err != nil {
			return err
		}
		now := uc.now()
		if err := tx.Sales.UpdateStatus(ctx, s.ID, to, now); err != nil {
			return err
		}
		s.Status, s.UpdatedAt = to, now
		if after != nil {
			if err := after(tx, s); err != nil {
				return err
			}
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// move devuelve al stock las líneas release y descuenta las líneas take, en ese orden.
func (uc *UseCase) move(ctx context.Context, tx *repository.Tx, s *entity.Sale, userID int64, ref string, release, take []entity.SaleItem) error {
	for _, it := range release {
		err := uc.ledger.Increment(ctx, tx, inventory.Movement{
			TransactionRef: ref, PartID: it.PartID, Quantity: it.Quantity,
			Source: entity.SourceSaleRelease, ReferenceID: s.ID, UserID: userID,
		})
		if err != nil {
			return err
		}
	}
	for _, it := range take {
		err := uc.ledger.Decrement(ctx, tx, inventory.Movement{
			TransactionRef: ref, PartID: it.PartID, Quantity: it.Quantity,
			Source: entity.SourceSale, ReferenceID: s.ID, UserID: userID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID devuelve la venta con sus ítems.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta %d no encontrada", id)
	}
	if s.Items, err = uc.saleRepo.ListItems(ctx, id); err != nil {
		return nil, err
	}
	return toResponse(s), nil
}

// ListItems devuelve solo las líneas de la venta.
func (uc *UseCase) ListItems(ctx context.Context, id int64) ([]dto.SaleItemResponse, error) {
	s, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Items, nil
}

// List lista ventas (sin ítems) con filtros.
func (uc *UseCase) List(ctx context.Context, in dto.SaleFilter) ([]dto.SaleResponse, error) {
	in.DefaultPage()
	f := repository.SaleFilter{Limit: in.Limit, Offset: in.Offset}
	if in.CustomerID > 0 {
		f.CustomerID = &in.CustomerID
	}
	if in.PaymentMethodID > 0 {
		f.PaymentMethodID = &in.PaymentMethodID
	}
	if in.Status != "" {
		f.Status = entity.Status(in.Status)
		if !entity.SaleLifecycle.Valid(f.Status) {
			return nil, domain.Invalid("estado de venta inválido: %s", in.Status)
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

	list, err := uc.saleRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toResponse(s))
	}
	return out, nil
}

func lockSale(ctx context.Context, tx *repository.Tx, id int64) (*entity.Sale, error) {
	s, err := tx.Sales.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta %d no encontrada", id)
	}
	return s, nil
}

func toItems(in []dto.SaleItemRequest) ([]entity.SaleItem, error) {
	if len(in) == 0 {
		return nil, domain.Invalid("la venta debe tener al menos un ítem")
	}
	items := make([]entity.SaleItem, 0, len(in))
	for i, it := range in {
		switch {
		case it.PartID <= 0:
			return nil, domain.Invalid("ítem %d: pieza es obligatoria", i+1)
		case it.Quantity <= 0:
			return nil, domain.Invalid("ítem %d: la cantidad debe ser mayor que cero", i+1)
		case !it.UnitPrice.IsPositive():
			return nil, domain.Invalid("ítem %d: el precio unitario debe ser mayor que cero", i+1)
		case it.ItemDiscount.IsNegative():
			return nil, domain.Invalid("ítem %d: el descuento no puede ser negativo", i+1)
		}
		if err := dto.Money(fmt.Sprintf("ítem %d: precio unitario", i+1), it.UnitPrice); err != nil {
			return nil, err
		}
		if err := dto.Money(fmt.Sprintf("ítem %d: descuento", i+1), it.ItemDiscount); err != nil {
			return nil, err
		}
		note := dto.Clean(it.Note)
		if err := dto.CheckLen("observación", note, dto.MaxNoteLen); err != nil {
			return nil, err
		}
		items = append(items, entity.SaleItem{
			PartID:       it.PartID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			ItemDiscount: it.ItemDiscount,
			Note:         note,
		})
	}
	return items, nil
}

func checkDiscount(d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.Invalid("el descuento no puede ser negativo")
	}
	return dto.Money("descuento", d)
}

func checkTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return domain.Invalid("el total de la venta no puede ser negativo")
	}
	return dto.Money("total de la venta", total)
}

func checkCustomer(ctx context.Context, tx *repository.Tx, id int64) error {
	c, err := tx.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || !c.Active {
		return domain.Invalid("cliente %d no encontrado o inactivo", id)
	}
	return nil
}

func checkPaymentMethod(ctx context.Context, tx *repository.Tx, id int64) error {
	m, err := tx.PaymentMethods.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || !m.Active {
		return domain.Invalid("forma de pago %d no encontrada o inactiva", id)
	}
	return nil
}

// checkStock valida pieza activa y stock suficiente antes de escribir nada.
// released son las líneas que se devolverán al stock en la misma operación.
// La garantía real la da el UPDATE condicional del ledger; esto solo adelanta el error.
func checkStock(ctx context.Context, tx *repository.Tx, items, released []entity.SaleItem) error {
	need := map[int64]int{}
	var order []int64
	for _, it := range items {
		if _, seen := need[it.PartID]; !seen {
			order = append(order, it.PartID)
		}
		need[it.PartID] += it.Quantity
	}
	back := map[int64]int{}
	for _, it := range released {
		back[it.PartID] += it.Quantity
	}
	for _, id := range order {
		part, err := tx.Parts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if part == nil || !part.Active {
			return domain.Invalid("pieza %d no encontrada o inactiva", id)
		}
		available := part.QuantityInStock + back[id]
		if available < need[id] {
			return domain.InsufficientStock("stock insuficiente para la pieza %s. Disponible: %d", part.Name, available)
		}
	}
	return nil
}

func insertItems(ctx context.Context, tx *repository.Tx, s *entity.Sale, items []entity.SaleItem) error {
	s.Items = make([]entity.SaleItem, 0, len(items))
	for _, it := range items {
		it.SaleID = s.ID
		if err := tx.Sales.CreateItem(ctx, &it); err != nil {
			return err
		}
		s.Items = append(s.Items, it)
	}
	return nil
}

func toResponse(s *entity.Sale) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		UserID:          s.UserID,
		PaymentMethodID: s.PaymentMethodID,
		SoldAt:          s.SoldAt,
		Discount:        s.Discount,
		TotalValue:      s.TotalValue,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:           it.ID,
			PartID:       it.PartID,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			ItemDiscount: it.ItemDiscount,
			Subtotal:     pricing.LineSubtotal(it),
			Note:         it.Note,
		})
	}
	return out
}
