package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ulule/limiter/v3"
	memlimiter "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jhoicas/pecas-api/docs"
	"github.com/jhoicas/pecas-api/internal/application/alert"
	"github.com/jhoicas/pecas-api/internal/application/analytics"
	"github.com/jhoicas/pecas-api/internal/application/auth"
	"github.com/jhoicas/pecas-api/internal/application/catalog"
	"github.com/jhoicas/pecas-api/internal/application/exchange"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/application/purchase"
	"github.com/jhoicas/pecas-api/internal/application/sale"
	"github.com/jhoicas/pecas-api/internal/domain/repository"
	"github.com/jhoicas/pecas-api/internal/infrastructure/memory"
	"github.com/jhoicas/pecas-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/pecas-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/pecas-api/internal/interfaces/http"
	"github.com/jhoicas/pecas-api/pkg/config"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

// repos puertos de persistencia del backend elegido.
type repos struct {
	tx             inventory.TxRunner
	parts          repository.PartRepository
	movements      repository.StockMovementRepository
	purchases      repository.PurchaseRepository
	sales          repository.SaleRepository
	exchanges      repository.ExchangeRepository
	suppliers      repository.SupplierRepository
	customers      repository.CustomerRepository
	paymentMethods repository.PaymentMethodRepository
	categories     repository.CategoryRepository
	brands         repository.BrandRepository
	users          repository.UserRepository
	analytics      repository.AnalyticsRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		r            repos
		resetCodes   auth.ResetCodeStore
		limiterStore limiter.Store
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		if cfg.Redis.URL == "" {
			log.Fatal().Msg("REDIS_URL es obligatorio con STORAGE_DRIVER=postgres")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			tx:             postgres.NewTxRunner(pool),
			parts:          postgres.NewPartRepository(pool),
			movements:      postgres.NewStockMovementRepository(pool),
			purchases:      postgres.NewPurchaseRepository(pool),
			sales:          postgres.NewSaleRepository(pool),
			exchanges:      postgres.NewExchangeRepository(pool),
			suppliers:      postgres.NewSupplierRepository(pool),
			customers:      postgres.NewCustomerRepository(pool),
			paymentMethods: postgres.NewPaymentMethodRepository(pool),
			categories:     postgres.NewCategoryRepository(pool),
			brands:         postgres.NewBrandRepository(pool),
			users:          postgres.NewUserRepository(pool),
			analytics:      postgres.NewAnalyticsRepository(pool),
		}
	case config.StorageMemory:
		store := memory.NewStore()
		r = repos{
			tx:             memory.NewTxRunner(store),
			parts:          memory.NewPartRepository(store),
			movements:      memory.NewStockMovementRepository(store),
			purchases:      memory.NewPurchaseRepository(store),
			sales:          memory.NewSaleRepository(store),
			exchanges:      memory.NewExchangeRepository(store),
			suppliers:      memory.NewSupplierRepository(store),
			customers:      memory.NewCustomerRepository(store),
			paymentMethods: memory.NewPaymentMethodRepository(store),
			categories:     memory.NewCategoryRepository(store),
			brands:         memory.NewBrandRepository(store),
			users:          memory.NewUserRepository(store),
			analytics:      memory.NewAnalyticsRepository(store),
		}
		resetCodes = memory.NewResetCodeStore()
		limiterStore = memlimiter.NewStore()
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
	}

	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		resetCodes = infraredis.NewResetCodeStore(rdb)
		if limiterStore, err = infraredis.NewLimiterStore(rdb); err != nil {
			log.Fatal().Err(err).Msg("store del rate limiter")
		}
	}

	ledger := inventory.NewLedger()
	authUC := auth.NewAuthUseCase(r.users, resetCodes, auth.NewLogNotifier(log.Component("auth")), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.ResetCodeTTL, log.Component("auth"))

	app, err := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		SwaggerJSON: docs.SwaggerJSON,
	}, httpRouter.RouterDeps{
		PurchaseUC:      purchase.NewUseCase(r.tx, ledger, r.purchases, log.Component("purchase")),
		SaleUC:          sale.NewUseCase(r.tx, ledger, r.sales, log.Component("sale")),
		ExchangeUC:      exchange.NewUseCase(r.tx, ledger, r.exchanges, r.sales, log.Component("exchange")),
		PartUC:          catalog.NewPartUseCase(r.tx, ledger, r.parts, r.categories, r.brands),
		HistoryUC:       inventory.NewHistoryUseCase(r.parts, r.movements),
		SupplierUC:      catalog.NewSupplierUseCase(r.suppliers),
		CustomerUC:      catalog.NewCustomerUseCase(r.customers),
		PaymentMethodUC: catalog.NewPaymentMethodUseCase(r.paymentMethods),
		CategoryUC:      catalog.NewCategoryUseCase(r.categories),
		BrandUC:         catalog.NewBrandUseCase(r.brands),
		AlertUC:         alert.NewUseCase(r.parts, r.sales, r.purchases),
		DashboardUC:     analytics.NewDashboardUseCase(r.analytics),
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
		LimiterStore:    limiterStore,
		LoginRateLimit:  cfg.Auth.LoginRateLimit,
		Log:             log.Component("http"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("armar servidor HTTP")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
