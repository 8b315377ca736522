package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// Error es un fallo tipado: Kind es uno de los sentinelas de arriba y Message
// el texto legible que llega al cliente. errors.Is(err, ErrNotFound) funciona
// a través de Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Invalid construye un ErrInvalidInput con mensaje.
func Invalid(format string, args ...any) error {
	return newError(ErrInvalidInput, format, args...)
}

// NotFound construye un ErrNotFound con mensaje.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// InvalidState construye un ErrInvalidState con mensaje.
func InvalidState(format string, args ...any) error {
	return newError(ErrInvalidState, format, args...)
}

// InsufficientStock construye un ErrInsufficientStock con mensaje.
func InsufficientStock(format string, args ...any) error {
	return newError(ErrInsufficientStock, format, args...)
}

// Message devuelve el mensaje legible de err: el de *Error si lo hay,
// si no el texto del error.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return err.Error()
}
