package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"

	"github.com/jhoicas/pecas-api/internal/application/alert"
	"github.com/jhoicas/pecas-api/internal/application/analytics"
	"github.com/jhoicas/pecas-api/internal/application/auth"
	"github.com/jhoicas/pecas-api/internal/application/catalog"
	"github.com/jhoicas/pecas-api/internal/application/exchange"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/application/purchase"
	"github.com/jhoicas/pecas-api/internal/application/sale"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PurchaseUC      *purchase.UseCase
	SaleUC          *sale.UseCase
	ExchangeUC      *exchange.UseCase
	PartUC          *catalog.PartUseCase
	HistoryUC       *inventory.HistoryUseCase
	SupplierUC      *catalog.SupplierUseCase
	CustomerUC      *catalog.CustomerUseCase
	PaymentMethodUC *catalog.PaymentMethodUseCase
	CategoryUC      *catalog.CategoryUseCase
	BrandUC         *catalog.BrandUseCase
	AlertUC         *alert.UseCase
	DashboardUC     *analytics.DashboardUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
	LimiterStore    limiter.Store // nil = sin límite en /auth
	LoginRateLimit  string        // formato ulule, p.ej. "20-M"
	Log             *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) error {
	api := app.Group("/api")
	log := deps.Log
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth: login y recuperación son públicos y van con rate limit
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	if deps.LimiterStore != nil {
		rl, err := RateLimit(deps.LimiterStore, deps.LoginRateLimit, log)
		if err != nil {
			return err
		}
		authGroup.Use(rl)
	}
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/register", requireAuth, RequireRole(entity.RoleAdmin), authHandler.Register)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, log)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)
	purchases.Get("/:id/items", purchaseHandler.Items)
	purchases.Patch("/:id/receive", purchaseHandler.Receive)
	purchases.Patch("/:id/cancel", purchaseHandler.Cancel)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, log)
	exchangeHandler := NewExchangeHandler(deps.ExchangeUC, log)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Get("/:id/items", saleHandler.Items)
	sales.Get("/:id/exchanges", exchangeHandler.BySale)
	sales.Patch("/:id/complete", saleHandler.Complete)
	sales.Patch("/:id/cancel", saleHandler.Cancel)

	exchanges := protected.Group("/exchanges")
	exchanges.Post("/", exchangeHandler.Create)
	exchanges.Get("/", exchangeHandler.List)
	exchanges.Get("/:id", exchangeHandler.GetByID)
	exchanges.Patch("/:id/cancel", exchangeHandler.Cancel)

	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC, deps.HistoryUC, log)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Put("/:id", partHandler.Update)
	parts.Delete("/:id", partHandler.Deactivate)
	parts.Get("/:id/movements", partHandler.Movements)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, log)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Delete("/:id", supplierHandler.Deactivate)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Delete("/:id", customerHandler.Deactivate)

	methods := protected.Group("/payment-methods")
	methodHandler := NewPaymentMethodHandler(deps.PaymentMethodUC, log)
	methods.Post("/", methodHandler.Create)
	methods.Get("/", methodHandler.List)
	methods.Get("/:id", methodHandler.GetByID)
	methods.Delete("/:id", methodHandler.Deactivate)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Delete("/:id", categoryHandler.Deactivate)

	brands := protected.Group("/brands")
	brandHandler := NewBrandHandler(deps.BrandUC, log)
	brands.Post("/", brandHandler.Create)
	brands.Get("/", brandHandler.List)
	brands.Get("/:id", brandHandler.GetByID)
	brands.Delete("/:id", brandHandler.Deactivate)

	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC, log)
	alerts.Get("/", alertHandler.All)
	alerts.Get("/low-stock", alertHandler.LowStock)
	alerts.Get("/count", alertHandler.Count)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/recent", dashboardHandler.Recent)

	return nil
}
