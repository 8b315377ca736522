package inventory

import (
	"context"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

const defaultHistoryLimit = 100

// HistoryUseCase consulta el historial del ledger de una pieza.
type HistoryUseCase struct {
	partRepo     repository.PartRepository
	movementRepo repository.StockMovementRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(partRepo repository.PartRepository, movementRepo repository.StockMovementRepository) *HistoryUseCase {
	return &HistoryUseCase{partRepo: partRepo, movementRepo: movementRepo}
}

// ListByPart devuelve los últimos movimientos de la pieza, más recientes primero.
func (uc *HistoryUseCase) ListByPart(ctx context.Context, partID int64, limit int) ([]dto.StockMovementResponse, error) {
	part, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.NotFound("pieza %d no encontrada", partID)
	}
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}
	list, err := uc.movementRepo.ListByPart(ctx, partID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:             m.ID,
			TransactionRef: m.TransactionRef,
			PartID:         m.PartID,
			Direction:      m.Direction,
			Quantity:       m.Quantity,
			Source:         m.Source,
			ReferenceID:    m.ReferenceID,
			UserID:         m.UserID,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, nil
}
