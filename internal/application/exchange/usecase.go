// Package exchange implementa cambios y devoluciones sobre ventas completadas.
package exchange

import (
	"context"
	"time"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// UseCase casos de uso de cambios.
type UseCase struct {
	txRunner     inventory.TxRunner
	ledger       *inventory.Ledger
	exchangeRepo repository.ExchangeRepository
	saleRepo     repository.SaleRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	exchangeRepo repository.ExchangeRepository,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		exchangeRepo: exchangeRepo,
		saleRepo:     saleRepo,
		log:          log,
		now:          time.Now,
	}
}

// Create registra el cambio: la pieza original vuelve al stock y la sustituta (si hay) sale.
// Sin sustituta es una devolución pura. Misma pieza como sustituta es válido (delta neto cero).
func (uc *UseCase) Create(ctx context.Context, userID int64, in dto.CreateExchangeRequest) (*dto.ExchangeResponse, error) {
	if in.SaleID <= 0 {
		return nil, domain.Invalid("venta es obligatoria")
	}
	if in.OriginalPartID <= 0 {
		return nil, domain.Invalid("pieza original es obligatoria")
	}
	if in.SubstitutePartID != nil && *in.SubstitutePartID <= 0 {
		return nil, domain.Invalid("pieza sustituta inválida")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser mayor que cero")
	}
	reason := in.Reason
	if err := dto.Required("motivo", &reason, dto.MaxReasonLen); err != nil {
		return nil, err
	}

	e := &entity.Exchange{
		SaleID:           in.SaleID,
		OriginalPartID:   in.OriginalPartID,
		SubstitutePartID: in.SubstitutePartID,
		Quantity:         in.Quantity,
		Reason:           reason,
		UserID:           userID,
		ExchangedAt:      uc.now(),
		Status:           entity.ExchangeLifecycle.Initial,
	}

	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		s, err := tx.Sales.GetForUpdate(ctx, e.SaleID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NotFound("venta %d no encontrada", e.SaleID)
		}
		if s.Status != entity.StatusCompleted {
			return domain.InvalidState("solo se admiten cambios de ventas completadas (venta %d en estado %s)", s.ID, s.Status)
		}
		if s.Items, err = tx.Sales.ListItems(ctx, s.ID); err != nil {
			return err
		}
		sold, ok := s.QuantityOf(e.OriginalPartID)
		if !ok {
			return domain.NotFound("la pieza %d no forma parte de la venta %d", e.OriginalPartID, s.ID)
		}
		already, err := tx.Exchanges.SumActiveQuantity(ctx, s.ID, e.OriginalPartID)
		if err != nil {
			return err
		}
		if remaining := sold - already; e.Quantity > remaining {
			return domain.Invalid("cantidad a cambiar (%d) mayor que la disponible en la venta (%d)", e.Quantity, remaining)
		}
		if e.SubstitutePartID != nil {
			if err := checkSubstitute(ctx, tx, e); err != nil {
				return err
			}
		}
		if err := tx.Exchanges.Create(ctx, e); err != nil {
			return err
		}

		ref := inventory.NewTransactionRef()
		err = uc.ledger.Increment(ctx, tx, inventory.Movement{
			TransactionRef: ref, PartID: e.OriginalPartID, Quantity: e.Quantity,
			Source: entity.SourceExchangeReturn, ReferenceID: e.ID, UserID: userID,
		})
		if err != nil {
			return err
		}
		if e.SubstitutePartID == nil {
			return nil
		}
		return uc.ledger.Decrement(ctx, tx, inventory.Movement{
			TransactionRef: ref, PartID: *e.SubstitutePartID, Quantity: e.Quantity,
			Source: entity.SourceExchangeSubstitute, ReferenceID: e.ID, UserID: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("exchange_id", e.ID).Int64("sale_id", e.SaleID).Int("quantity", e.Quantity).Msg("cambio registrado")
	return toResponse(e), nil
}

// Cancel revierte un cambio activo: la sustituta vuelve al stock y la original sale de nuevo.
func (uc *UseCase) Cancel(ctx context.Context, userID, id int64) (*dto.ExchangeResponse, error) {
	var out *entity.Exchange
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		e, err := tx.Exchanges.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.NotFound("cambio %d no encontrado", id)
		}
		if err := entity.ExchangeLifecycle.Transition(e.Status, entity.StatusCancelled); err != nil {
			return err
		}
		now := uc.now()
		if err := tx.Exchanges.Cancel(ctx, e.ID, now); err != nil {
			return err
		}
		e.Status, e.CancelledAt = entity.StatusCancelled, &now

		ref := inventory.NewTransactionRef()
		if e.SubstitutePartID != nil {
			err := uc.ledger.Increment(ctx, tx, inventory.Movement{
				TransactionRef: ref, PartID: *e.SubstitutePartID, Quantity: e.Quantity,
				Source: entity.SourceExchangeReversal, ReferenceID: e.ID, UserID: userID,
			})
			if err != nil {
				return err
			}
		}
		err = uc.ledger.Decrement(ctx, tx, inventory.Movement{
			TransactionRef: ref, PartID: e.OriginalPartID, Quantity: e.Quantity,
			Source: entity.SourceExchangeReversal, ReferenceID: e.ID, UserID: userID,
		})
		if err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("exchange_id", id).Msg("cambio cancelado")
	return toResponse(out), nil
}

// GetByID devuelve un cambio.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.ExchangeResponse, error) {
	e, err := uc.exchangeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound("cambio %d no encontrado", id)
	}
	return toResponse(e), nil
}

// List lista cambios con filtros de venta, estado y fechas.
func (uc *UseCase) List(ctx context.Context, in dto.ExchangeFilter) ([]dto.ExchangeResponse, error) {
	in.DefaultPage()
	f := repository.ExchangeFilter{Limit: in.Limit, Offset: in.Offset}
	if in.SaleID > 0 {
		f.SaleID = &in.SaleID
	}
	if in.Status != "" {
		f.Status = entity.Status(in.Status)
		if !entity.ExchangeLifecycle.Valid(f.Status) {
			return nil, domain.Invalid("estado de cambio inválido: %s", in.Status)
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
	return uc.list(ctx, f)
}

// ListBySale lista todos los cambios de una venta.
func (uc *UseCase) ListBySale(ctx context.Context, saleID int64) ([]dto.ExchangeResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta %d no encontrada", saleID)
	}
	return uc.list(ctx, repository.ExchangeFilter{SaleID: &saleID})
}

func (uc *UseCase) list(ctx context.Context, f repository.ExchangeFilter) ([]dto.ExchangeResponse, error) {
	list, err := uc.exchangeRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExchangeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toResponse(e))
	}
	return out, nil
}

func checkSubstitute(ctx context.Context, tx *repository.Tx, e *entity.Exchange) error {
	sub, err := tx.Parts.GetByID(ctx, *e.SubstitutePartID)
	if err != nil {
		return err
	}
	if sub == nil || !sub.Active {
		return domain.Invalid("pieza sustituta %d no encontrada o inactiva", *e.SubstitutePartID)
	}
	// Misma pieza: la unidad devuelta cubre la entregada.
	if sub.ID != e.OriginalPartID && sub.QuantityInStock < e.Quantity {
		return domain.InsufficientStock("stock insuficiente para la pieza %s. Disponible: %d", sub.Name, sub.QuantityInStock)
	}
	return nil
}

func toResponse(e *entity.Exchange) *dto.ExchangeResponse {
	return &dto.ExchangeResponse{
		ID:               e.ID,
		SaleID:           e.SaleID,
		OriginalPartID:   e.OriginalPartID,
		SubstitutePartID: e.SubstitutePartID,
		Quantity:         e.Quantity,
		Reason:           e.Reason,
		UserID:           e.UserID,
		ExchangedAt:      e.ExchangedAt,
		Status:           string(e.Status),
		CancelledAt:      e.CancelledAt,
	}
}
