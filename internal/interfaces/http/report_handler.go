package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pecas-api/internal/application/alert"
	"github.com/jhoicas/pecas-api/internal/application/analytics"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// AlertHandler alertas de reposición y pedidos pendientes.
type AlertHandler struct {
	uc  *alert.UseCase
	log *logger.Logger
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alert.UseCase, log *logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, log: log}
}

// All godoc
// @Summary      Alertas: stock bajo, ventas y compras pendientes
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/alerts [get]
func (h *AlertHandler) All(c *fiber.Ctx) error {
	out, err := h.uc.All(c.UserContext())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *AlertHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

func (h *AlertHandler) Count(c *fiber.Ctx) error {
	out, err := h.uc.Counts(c.UserContext())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// DashboardHandler resumen del mes y actividad reciente.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Summary godoc
// @Summary      Resumen del dashboard (mes en curso)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}

// Recent godoc
// @Summary      Actividad reciente (ventas, compras y cambios)
// @Tags         dashboard
// @Security     Bearer
// @Param        limit  query  int  false  "Máximo de filas"  default(10)
// @Success      200  {object}  dto.Envelope
// @Router       /api/dashboard/recent [get]
func (h *DashboardHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.RecentActivity(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, out)
}
