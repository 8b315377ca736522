package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/purchase"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// PurchaseHandler maneja las peticiones HTTP de compras (protegido).
type PurchaseHandler struct {
	uc  *purchase.UseCase
	log *logger.Logger
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.UseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar compra (pending, no mueve stock)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, out, "compra registrada")
}

// Update godoc
// @Summary      Editar compra pendiente
// @Tags         purchases
// @Security     Bearer
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdatePurchaseRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var in dto.UpdatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// Receive godoc
// @Summary      Recibir compra: suma stock de cada ítem
// @Tags         purchases
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      200 {object}  dto.Envelope
// @Failure      400 {object}  dto.Envelope
// @Router       /api/purchases/{id}/receive [patch]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Receive(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// Cancel godoc
// @Summary      Cancelar compra pendiente
// @Tags         purchases
// @Security     Bearer
// @Param        id  path  int  true  "ID"
// @Success      200 {object}  dto.Envelope
// @Router       /api/purchases/{id}/cancel [patch]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
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

func (h *PurchaseHandler) Items(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Param        supplier_id  query  int     false  "Proveedor"
// @Param        status       query  string  false  "pending|received|cancelled"
// @Param        from         query  string  false  "AAAA-MM-DD"
// @Param        to           query  string  false  "AAAA-MM-DD"
// @Success      200  {object}  dto.Envelope
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var f dto.PurchaseFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}
