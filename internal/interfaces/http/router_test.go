package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	memlimiter "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/jhoicas/pecas-api/internal/application/alert"
	"github.com/jhoicas/pecas-api/internal/application/analytics"
	"github.com/jhoicas/pecas-api/internal/application/auth"
	"github.com/jhoicas/pecas-api/internal/application/catalog"
	"github.com/jhoicas/pecas-api/internal/application/exchange"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/application/purchase"
	"github.com/jhoicas/pecas-api/internal/application/sale"
	"github.com/jhoicas/pecas-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/pecas-api/internal/interfaces/http"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

type mapCodes struct {
	mu    sync.Mutex
	codes map[string]auth.ResetCode
}

func (m *mapCodes) Save(_ context.Context, email string, code auth.ResetCode, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func (m *mapCodes) Get(_ context.Context, email string) (*auth.ResetCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[email]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *mapCodes) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, email)
	return nil
}

// newTestApp arma la API completa sobre el backend en memoria.
func newTestApp(t *testing.T, store limiter.Store, rate string) *fiber.App {
	t.Helper()
	mem := memory.NewStore()
	log := logger.Nop()
	tx := memory.NewTxRunner(mem)
	ledger := inventory.NewLedger()
	partRepo := memory.NewPartRepository(mem)
	saleRepo := memory.NewSaleRepository(mem)
	purchaseRepo := memory.NewPurchaseRepository(mem)

	app, err := apphttp.NewApp(apphttp.AppConfig{Name: "pecas-test"}, apphttp.RouterDeps{
		PurchaseUC:      purchase.NewUseCase(tx, ledger, purchaseRepo, log),
		SaleUC:          sale.NewUseCase(tx, ledger, saleRepo, log),
		ExchangeUC:      exchange.NewUseCase(tx, ledger, memory.NewExchangeRepository(mem), saleRepo, log),
		PartUC:          catalog.NewPartUseCase(tx, ledger, partRepo, memory.NewCategoryRepository(mem), memory.NewBrandRepository(mem)),
		HistoryUC:       inventory.NewHistoryUseCase(partRepo, memory.NewStockMovementRepository(mem)),
		SupplierUC:      catalog.NewSupplierUseCase(memory.NewSupplierRepository(mem)),
		CustomerUC:      catalog.NewCustomerUseCase(memory.NewCustomerRepository(mem)),
		PaymentMethodUC: catalog.NewPaymentMethodUseCase(memory.NewPaymentMethodRepository(mem)),
		CategoryUC:      catalog.NewCategoryUseCase(memory.NewCategoryRepository(mem)),
		BrandUC:         catalog.NewBrandUseCase(memory.NewBrandRepository(mem)),
		AlertUC:         alert.NewUseCase(partRepo, saleRepo, purchaseRepo),
		DashboardUC:     analytics.NewDashboardUseCase(memory.NewAnalyticsRepository(mem)),
		AuthUC: auth.NewAuthUseCase(
			memory.NewUserRepository(mem),
			&mapCodes{codes: map[string]auth.ResetCode{}},
			auth.NewLogNotifier(log),
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
			15*time.Minute,
			log,
		),
		JWTSecret:      testJWTSecret,
		LimiterStore:   store,
		LoginRateLimit: rate,
		Log:            log,
	})
	require.NoError(t, err)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// call hace la petición y decodifica el sobre; si out no es nil decodifica data ahí.
func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode, env
}

type idOnly struct {
	ID int64 `json:"id"`
}

type orderOut struct {
	ID         int64           `json:"id"`
	Status     string          `json:"status"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type partOut struct {
	ID              int64 `json:"id"`
	QuantityInStock int   `json:"quantity_in_stock"`
	LowStock        bool  `json:"low_stock"`
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil, "")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRutaInexistente_SobreNotFound(t *testing.T) {
	app := newTestApp(t, nil, "")
	status, env := call(t, app, http.MethodGet, "/no-existe", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	app := newTestApp(t, nil, "")
	for _, path := range []string{"/api/parts", "/api/sales", "/api/alerts", "/api/dashboard/summary"} {
		status, env := call(t, app, http.MethodGet, path, "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, "MISSING_TOKEN", env.Error, path)
	}
}

func TestMapeoDeErrores(t *testing.T) {
	app := newTestApp(t, nil, "")
	tok := tokenForRole(t, "seller")

	status, env := call(t, app, http.MethodGet, "/api/parts/abc", tok, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env.Error)

	status, env = call(t, app, http.MethodGet, "/api/parts/999", tok, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error)

	status, env = call(t, app, http.MethodPost, "/api/parts", tok, map[string]interface{}{"name": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", env.Error)

	status, _ = call(t, app, http.MethodPost, "/api/payment-methods", tok, map[string]string{"name": "Pix"}, nil)
	require.Equal(t, http.StatusCreated, status)
	status, env = call(t, app, http.MethodPost, "/api/payment-methods", tok, map[string]string{"name": "pix"}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", env.Error)
}

func TestFlujoCompraVentaCambio(t *testing.T) {
	app := newTestApp(t, nil, "")
	tok := tokenForRole(t, "seller")

	var supplier, customer, method idOnly
	status, _ := call(t, app, http.MethodPost, "/api/suppliers", tok, map[string]string{"name": "Distribuidora Sul"}, &supplier)
	require.Equal(t, http.StatusCreated, status)
	status, _ = call(t, app, http.MethodPost, "/api/customers", tok, map[string]string{"name": "Maria Souza"}, &customer)
	require.Equal(t, http.StatusCreated, status)
	status, _ = call(t, app, http.MethodPost, "/api/payment-methods", tok, map[string]string{"name": "Dinheiro"}, &method)
	require.Equal(t, http.StatusCreated, status)

	var part, spare partOut
	status, _ = call(t, app, http.MethodPost, "/api/parts", tok, map[string]interface{}{
		"name": "SSD 480GB", "sale_price": "250.00", "cost_price": "10.00", "minimum_quantity": 1,
	}, &part)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 0, part.QuantityInStock)
	status, _ = call(t, app, http.MethodPost, "/api/parts", tok, map[string]interface{}{
		"name": "SSD 240GB", "sale_price": "180.00", "quantity_in_stock": 5, "minimum_quantity": 1,
	}, &spare)
	require.Equal(t, http.StatusCreated, status)

	// compra: 3 × 10.00 = 30.00, no mueve stock hasta recibir
	var po orderOut
	status, _ = call(t, app, http.MethodPost, "/api/purchases", tok, map[string]interface{}{
		"supplier_id": supplier.ID,
		"items":       []map[string]interface{}{{"part_id": part.ID, "quantity": 3, "unit_cost": "10.00"}},
	}, &po)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", po.Status)
	assert.True(t, decimal.RequireFromString("30.00").Equal(po.TotalValue))

	status, _ = call(t, app, http.MethodPatch, fmt.Sprintf("/api/purchases/%d/receive", po.ID), tok, nil, &po)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "received", po.Status)

	status, env := call(t, app, http.MethodPatch, fmt.Sprintf("/api/purchases/%d/receive", po.ID), tok, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STATE", env.Error)

	status, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/parts/%d", part.ID), tok, nil, &part)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 3, part.QuantityInStock)

	// venta: 4 unidades no alcanzan, 3 sí
	sale := func(qty int) map[string]interface{} {
		return map[string]interface{}{
			"customer_id": customer.ID, "payment_method_id": method.ID,
			"items": []map[string]interface{}{{"part_id": part.ID, "quantity": qty, "unit_price": "250.00"}},
		}
	}
	status, env = call(t, app, http.MethodPost, "/api/sales", tok, sale(4), nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error)

	var so orderOut
	status, _ = call(t, app, http.MethodPost, "/api/sales", tok, sale(3), &so)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, decimal.RequireFromString("750.00").Equal(so.TotalValue))

	status, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/parts/%d", part.ID), tok, nil, &part)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, part.QuantityInStock)

	// completada es terminal: ya no se cancela
	status, _ = call(t, app, http.MethodPatch, fmt.Sprintf("/api/sales/%d/complete", so.ID), tok, nil, &so)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "completed", so.Status)
	status, env = call(t, app, http.MethodPatch, fmt.Sprintf("/api/sales/%d/cancel", so.ID), tok, nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_STATE", env.Error)

	// cambio: devuelve 1 SSD 480GB y entrega 1 SSD 240GB
	status, _ = call(t, app, http.MethodPost, "/api/exchanges", tok, map[string]interface{}{
		"sale_id": so.ID, "original_part_id": part.ID, "substitute_part_id": spare.ID,
		"quantity": 1, "reason": "capacidad equivocada",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/parts/%d", part.ID), tok, nil, &part)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, part.QuantityInStock)
	status, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/parts/%d", spare.ID), tok, nil, &spare)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4, spare.QuantityInStock)

	var exchanges []idOnly
	status, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/sales/%d/exchanges", so.ID), tok, nil, &exchanges)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, exchanges, 1)

	// historial: recepción, venta y devolución del cambio
	var movements []idOnly
	status, _ = call(t, app, http.MethodGet, fmt.Sprintf("/api/parts/%d/movements", part.ID), tok, nil, &movements)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, movements, 3)

	var counts struct {
		LowStock int `json:"low_stock"`
	}
	status, _ = call(t, app, http.MethodGet, "/api/alerts/count", tok, nil, &counts)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, counts.LowStock, "SSD 480GB quedó con 1 unidad y mínimo 1")
}

func TestRegister_SoloAdmin(t *testing.T) {
	app := newTestApp(t, nil, "")
	body := map[string]string{"email": "vendedor@pecas.test", "password": "secreto123", "name": "Vendedor"}

	status, env := call(t, app, http.MethodPost, "/api/auth/register", tokenForRole(t, "seller"), body, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error)

	var user struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	status, _ = call(t, app, http.MethodPost, "/api/auth/register", tokenForRole(t, "admin"), body, &user)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "seller", user.Role)

	status, env = call(t, app, http.MethodPost, "/api/auth/register", tokenForRole(t, "admin"), body, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", env.Error)

	var login struct {
		Token string `json:"token"`
	}
	status, _ = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "vendedor@pecas.test", "password": "secreto123",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)

	var me struct {
		Email string `json:"email"`
	}
	status, _ = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "vendedor@pecas.test", me.Email)

	status, env = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "vendedor@pecas.test", "password": "otra-clave",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", env.Error)
}

func TestLogin_RateLimit(t *testing.T) {
	app := newTestApp(t, memlimiter.NewStore(), "2-M")
	body := map[string]string{"email": "nadie@pecas.test", "password": "secreto123"}

	for i := 0; i < 2; i++ {
		status, _ := call(t, app, http.MethodPost, "/api/auth/login", "", body, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	}
	status, env := call(t, app, http.MethodPost, "/api/auth/login", "", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_LIMITED", env.Error)
}

func TestRateLimit_FormatoInvalido(t *testing.T) {
	_, err := apphttp.RateLimit(memlimiter.NewStore(), "muchos", logger.Nop())
	assert.Error(t, err)
}

func TestCategoriasYMarcas_ReferenciaDesdePieza(t *testing.T) {
	app := newTestApp(t, nil, "")
	tok := tokenForRole(t, "seller")

	var cat, brand struct {
		ID int64 `json:"id"`
	}
	status, _ := call(t, app, http.MethodPost, "/api/categories", tok, map[string]string{"name": "Placas de vídeo"}, &cat)
	require.Equal(t, http.StatusCreated, status)
	status, _ = call(t, app, http.MethodPost, "/api/brands", tok, map[string]string{"name": "Gigabyte"}, &brand)
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodPost, "/api/parts", tok, map[string]interface{}{
		"name": "RTX 3060", "sale_price": "2200.00", "category_id": cat.ID, "brand_id": brand.ID,
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	status, env := call(t, app, http.MethodPost, "/api/parts", tok, map[string]interface{}{
		"name": "RTX 4060", "sale_price": "2900.00", "brand_id": 999,
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", env.Error)

	status, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", cat.ID), tok, nil, nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]interface{}
	status, _ = call(t, app, http.MethodGet, "/api/categories", tok, nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list)
}
