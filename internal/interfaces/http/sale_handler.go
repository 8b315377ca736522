package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/sale"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc  *sale.UseCase
	log *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sale.UseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar venta (pending, descuenta stock)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope  "VALIDATION o INSUFFICIENT_STOCK"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, out, "venta registrada")
}

// Update godoc
// @Summary      Editar venta pendiente (reemplaza ítems y reajusta stock)
// @Tags         sales
// @Security     Bearer
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateSaleRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *SaleHandler) Complete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Complete(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// Cancel godoc
// @Summary      Cancelar venta pendiente (devuelve el stock)
// @Tags         sales
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      200 {object}  dto.Envelope
// @Router       /api/sales/{id}/cancel [patch]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
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

func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
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

func (h *SaleHandler) Items(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.ListItems(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *SaleHandler) List(c *fiber.Ctx) error {
	var f dto.SaleFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}
