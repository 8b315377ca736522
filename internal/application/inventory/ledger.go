package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

// Movement delta de stock a aplicar sobre una pieza.
// TransactionRef agrupa todos los movimientos de una misma unidad de trabajo (ver NewTransactionRef).
type Movement struct {
	TransactionRef string
	PartID         int64
	Quantity       int
	Source         string
	ReferenceID    int64
	UserID         int64
}

// Ledger es el único punto que modifica quantity_in_stock.
// Recibe el *repository.Tx del caller: nunca abre su propia transacción.
type Ledger struct {
	now func() time.Time
}

// NewLedger construye el ledger de inventario.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// NewTransactionRef genera la referencia compartida por los movimientos de una transacción.
func NewTransactionRef() string {
	return uuid.New().String()
}

// Increment suma m.Quantity al stock de la pieza y registra el movimiento de entrada.
func (l *Ledger) Increment(ctx context.Context, tx *repository.Tx, m Movement) error {
	if err := validateMovement(m); err != nil {
		return err
	}
	if err := tx.Stock.Increment(ctx, m.PartID, m.Quantity); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("pieza %d no encontrada", m.PartID)
		}
		return err
	}
	return l.record(ctx, tx, m, entity.MovementIn)
}

// Decrement resta m.Quantity solo si hay stock suficiente (UPDATE condicional, sin leer-y-escribir)
// y registra el movimiento de salida.
func (l *Ledger) Decrement(ctx context.Context, tx *repository.Tx, m Movement) error {
	if err := validateMovement(m); err != nil {
		return err
	}
	err := tx.Stock.Decrement(ctx, m.PartID, m.Quantity)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInsufficientStock):
		part, perr := tx.Parts.GetByID(ctx, m.PartID)
		if perr != nil || part == nil {
			return domain.InsufficientStock("stock insuficiente para la pieza %d", m.PartID)
		}
		return domain.InsufficientStock("stock insuficiente para la pieza %s. Disponible: %d", part.Name, part.QuantityInStock)
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound("pieza %d no encontrada", m.PartID)
	default:
		return err
	}
	return l.record(ctx, tx, m, entity.MovementOut)
}

func (l *Ledger) record(ctx context.Context, tx *repository.Tx, m Movement, direction string) error {
	ref := m.TransactionRef
	if ref == "" {
		ref = NewTransactionRef()
	}
	return tx.Movements.Create(ctx, &entity.StockMovement{
		TransactionRef: ref,
		PartID:         m.PartID,
		Direction:      direction,
		Quantity:       m.Quantity,
		Source:         m.Source,
		ReferenceID:    m.ReferenceID,
		UserID:         m.UserID,
		CreatedAt:      l.now(),
	})
}

func validateMovement(m Movement) error {
	if m.PartID <= 0 {
		return domain.Invalid("pieza inválida")
	}
	if m.Quantity <= 0 {
		return domain.Invalid("la cantidad debe ser mayor que cero")
	}
	return nil
}
