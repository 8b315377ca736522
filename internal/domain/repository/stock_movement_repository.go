package repository

import (
	"context"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
)

// StockMovementRepository persiste el historial del Ledger (append-only).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByPart(ctx context.Context, partID int64, limit int) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, source string, referenceID int64) ([]*entity.StockMovement, error)
}
