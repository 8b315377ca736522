package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// Códigos de error del sobre de respuesta.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidState      = "INVALID_STATE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeDuplicate         = "DUPLICATE"
	CodeInternal          = "INTERNAL"
	CodeInvalidBody       = "INVALID_BODY"
	CodeRateLimited       = "RATE_LIMITED"
)

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.Envelope{Success: true, Data: data})
}

func created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Data: data, Message: message})
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.Envelope{Success: true, Message: msg})
}

func errorBody(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.Envelope{Success: false, Error: code, Message: msg})
}

// statusFor traduce un error de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusBadRequest, CodeInvalidState
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, CodeInsufficientStock
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, CodeDuplicate
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

// fail responde con el sobre de error. Los 500 no exponen el detalle interno.
func fail(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, code := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		return errorBody(c, status, code, "error interno del servidor")
	}
	return errorBody(c, status, code, domain.Message(err))
}

func badBody(c *fiber.Ctx) error {
	return errorBody(c, fiber.StatusBadRequest, CodeInvalidBody, "cuerpo inválido")
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("%s inválido", name)
	}
	return id, nil
}
