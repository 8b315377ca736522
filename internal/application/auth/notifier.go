package auth

import (
	"context"

	"github.com/jhoicas/pecas-api/pkg/logger"
)

// LogNotifier entrega el código escribiéndolo en el log. No hay envío de email.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) SendResetCode(_ context.Context, email, code string) error {
	n.log.Warn().Str("email", email).Str("code", code).Msg("código de recuperación generado (sin envío de email)")
	return nil
}
