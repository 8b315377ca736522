package inventory

import (
	"context"

	"github.com/jhoicas/pecas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los repositorios atados a esa tx.
// Commit si fn devuelve nil; Rollback ante error o panic.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx *repository.Tx) error) error
}
