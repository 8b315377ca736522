package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pecas-api/internal/application/catalog"
	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// PartHandler maneja el catálogo de piezas y su historial de stock.
type PartHandler struct {
	uc      *catalog.PartUseCase
	history *inventory.HistoryUseCase
	log     *logger.Logger
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *catalog.PartUseCase, history *inventory.HistoryUseCase, log *logger.Logger) *PartHandler {
	return &PartHandler{uc: uc, history: history, log: log}
}

// Create godoc
// @Summary      Crear pieza (quantity_in_stock se registra como saldo inicial)
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "Pieza"
// @Success      201   {object}  dto.Envelope
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, out, "pieza creada")
}

func (h *PartHandler) GetByID(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Actualizar pieza (el stock solo cambia por movimientos)
// @Tags         parts
// @Security     Bearer
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdatePartRequest  true  "Cambios"
// @Success      200   {object}  dto.Envelope
// @Router       /api/parts/{id} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *PartHandler) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.uc.Deactivate(c.UserContext(), id); err != nil {
		return fail(c, h.log, err)
	}
	return message(c, "pieza desactivada")
}

// List godoc
// @Summary      Listar piezas
// @Tags         parts
// @Security     Bearer
// @Param        category_id       query  int     false  "Categoría"
// @Param        brand_id          query  int     false  "Marca"
// @Param        condition         query  string  false  "new|used"
// @Param        search            query  string  false  "Texto en el nombre"
// @Param        low_stock         query  bool    false  "Solo stock <= mínimo"
// @Param        include_inactive  query  bool    false  "Incluir inactivas"
// @Success      200  {object}  dto.Envelope
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	var f dto.PartFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// Movements historial del ledger de una pieza, más reciente primero.
func (h *PartHandler) Movements(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.history.ListByPart(c.UserContext(), id, c.QueryInt("limit", 0))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// registry operaciones comunes de los registros simples del catálogo.
type registry[In, Out any] interface {
	Create(ctx context.Context, in In) (*Out, error)
	GetByID(ctx context.Context, id int64) (*Out, error)
	List(ctx context.Context, includeInactive bool) ([]Out, error)
	Deactivate(ctx context.Context, id int64) error
}

// RegistryHandler CRUD HTTP sobre un registry.
type RegistryHandler[In, Out any] struct {
	svc         registry[In, Out]
	created     string
	deactivated string
	log         *logger.Logger
}

func newRegistryHandler[In, Out any](svc registry[In, Out], created, deactivated string, log *logger.Logger) *RegistryHandler[In, Out] {
	return &RegistryHandler[In, Out]{svc: svc, created: created, deactivated: deactivated, log: log}
}

func (h *RegistryHandler[In, Out]) Create(c *fiber.Ctx) error {
	var in In
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, out, h.created)
}

func (h *RegistryHandler[In, Out]) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	out, err := h.svc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *RegistryHandler[In, Out]) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), c.QueryBool("include_inactive", false))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *RegistryHandler[In, Out]) Deactivate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	if err := h.svc.Deactivate(c.UserContext(), id); err != nil {
		return fail(c, h.log, err)
	}
	return message(c, h.deactivated)
}

// NewSupplierHandler proveedores.
func NewSupplierHandler(uc *catalog.SupplierUseCase, log *logger.Logger) *RegistryHandler[dto.CreatePartyRequest, dto.PartyResponse] {
	return newRegistryHandler[dto.CreatePartyRequest, dto.PartyResponse](uc, "proveedor creado", "proveedor desactivado", log)
}

// NewCustomerHandler clientes.
func NewCustomerHandler(uc *catalog.CustomerUseCase, log *logger.Logger) *RegistryHandler[dto.CreatePartyRequest, dto.PartyResponse] {
	return newRegistryHandler[dto.CreatePartyRequest, dto.PartyResponse](uc, "cliente creado", "cliente desactivado", log)
}

// NewPaymentMethodHandler formas de pago.
func NewPaymentMethodHandler(uc *catalog.PaymentMethodUseCase, log *logger.Logger) *RegistryHandler[dto.CreatePaymentMethodRequest, dto.PaymentMethodResponse] {
	return newRegistryHandler[dto.CreatePaymentMethodRequest, dto.PaymentMethodResponse](uc, "forma de pago creada", "forma de pago desactivada", log)
}

// NewCategoryHandler categorías.
func NewCategoryHandler(uc *catalog.CategoryUseCase, log *logger.Logger) *RegistryHandler[dto.CatalogEntryRequest, dto.CatalogEntryResponse] {
	return newRegistryHandler[dto.CatalogEntryRequest, dto.CatalogEntryResponse](uc, "categoría creada", "categoría desactivada", log)
}

// NewBrandHandler marcas.
func NewBrandHandler(uc *catalog.BrandUseCase, log *logger.Logger) *RegistryHandler[dto.CatalogEntryRequest, dto.CatalogEntryResponse] {
	return newRegistryHandler[dto.CatalogEntryRequest, dto.CatalogEntryResponse](uc, "marca creada", "marca desactivada", log)
}
