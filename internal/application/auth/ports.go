package auth

import (
	"context"
	"time"
)

// ResetCode código de recuperación pendiente de un email.
type ResetCode struct {
	Code   string
	UserID int64
}

// ResetCodeStore almacén con expiración de códigos de recuperación (Redis en producción).
type ResetCodeStore interface {
	Save(ctx context.Context, email string, code ResetCode, ttl time.Duration) error
	// Get devuelve nil, nil si no hay código vigente.
	Get(ctx context.Context, email string) (*ResetCode, error)
	Delete(ctx context.Context, email string) error
}

// CodeNotifier entrega el código al usuario.
type CodeNotifier interface {
	SendResetCode(ctx context.Context, email, code string) error
}
