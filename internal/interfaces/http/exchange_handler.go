package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/exchange"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// ExchangeHandler maneja cambios y devoluciones sobre ventas.
type ExchangeHandler struct {
	uc  *exchange.UseCase
	log *logger.Logger
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(uc *exchange.UseCase, log *logger.Logger) *ExchangeHandler {
	return &ExchangeHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar cambio (sin substitute_part_id es devolución)
// @Tags         exchanges
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExchangeRequest  true  "Cambio"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /api/exchanges [post]
func (h *ExchangeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExchangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, out, "cambio registrado")
}

func (h *ExchangeHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *ExchangeHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *ExchangeHandler) List(c *fiber.Ctx) error {
	var f dto.ExchangeFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// BySale cambios de una venta (GET /api/sales/:id/exchanges).
func (h *ExchangeHandler) BySale(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.ListBySale(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}
