package exchange_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pecas-api/internal/application/dto"
	"github.com/jhoicas/pecas-api/internal/application/exchange"
	"github.com/jhoicas/pecas-api/internal/application/inventory"
	"github.com/jhoicas/pecas-api/internal/application/sale"
	"github.com/jhoicas/pecas-api/internal/domain"
	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/infrastructure/memory"
	"github.com/jhoicas/pecas-api/pkg/logger"
)

type fixture struct {
	store      *memory.Store
	uc         *exchange.UseCase
	sales      *sale.UseCase
	sold       *entity.Part // vendida: 2 unidades en la venta
	substitute *entity.Part // stock 4
	saleID     int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedger()
	f := &fixture{
		store:      store,
		uc:         exchange.NewUseCase(runner, ledger, memory.NewExchangeRepository(store), memory.NewSaleRepository(store), logger.Nop()),
		sales:      sale.NewUseCase(runner, ledger, memory.NewSaleRepository(store), logger.Nop()),
		sold:       &entity.Part{Name: "Teclado ABNT2", QuantityInStock: 5, Active: true},
		substitute: &entity.Part{Name: "Teclado mecânico", QuantityInStock: 4, Active: true},
	}
	customer := &entity.Customer{Name: "Maria Souza", Active: true}
	method := &entity.PaymentMethod{Name: "Cartão", Active: true}
	require.NoError(t, memory.NewCustomerRepository(store).Create(ctx, customer))
	require.NoError(t, memory.NewPaymentMethodRepository(store).Create(ctx, method))
	require.NoError(t, memory.NewPartRepository(store).Create(ctx, f.sold))
	require.NoError(t, memory.NewPartRepository(store).Create(ctx, f.substitute))

	s, err := f.sales.Create(ctx, 1, dto.CreateSaleRequest{
		CustomerID:      customer.ID,
		PaymentMethodID: method.ID,
		Items:           []dto.SaleItemRequest{{PartID: f.sold.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(80)}},
	})
	require.NoError(t, err)
	_, err = f.sales.Complete(ctx, s.ID)
	require.NoError(t, err)
	f.saleID = s.ID
	return f
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := memory.NewPartRepository(f.store).GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.QuantityInStock
}

func (f *fixture) request(qty int, substitute *int64) dto.CreateExchangeRequest {
	return dto.CreateExchangeRequest{
		SaleID:           f.saleID,
		OriginalPartID:   f.sold.ID,
		SubstitutePartID: substitute,
		Quantity:         qty,
		Reason:           "Tecla com defeito",
	}
}

func TestCreate_AplicaDeltas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	assert.Equal(t, 3, f.stock(t, f.sold.ID))

	out, err := f.uc.Create(ctx, 1, f.request(1, &f.substitute.ID))
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, 4, f.stock(t, f.sold.ID), "la original vuelve al stock")
	assert.Equal(t, 3, f.stock(t, f.substitute.ID), "la sustituta sale del stock")

	movs, err := memory.NewStockMovementRepository(f.store).ListByReference(ctx, entity.SourceExchangeReturn, out.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	subs, err := memory.NewStockMovementRepository(f.store).ListByReference(ctx, entity.SourceExchangeSubstitute, out.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, movs[0].TransactionRef, subs[0].TransactionRef)
}

func TestCreate_CantidadMayorQueLaLinea(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), 1, f.request(3, &f.substitute.ID))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 3, f.stock(t, f.sold.ID))
	assert.Equal(t, 4, f.stock(t, f.substitute.ID))
}

func TestCreate_DescuentaCambiosActivos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.uc.Create(ctx, 1, f.request(1, &f.substitute.ID))
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, 1, f.request(2, &f.substitute.ID))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "solo queda 1 unidad por cambiar")

	_, err = f.uc.Cancel(ctx, 1, first.ID)
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, 1, f.request(2, &f.substitute.ID))
	assert.NoError(t, err, "el cambio cancelado libera la cantidad")
}

func TestCreate_DevolucionSinSustituta(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Create(context.Background(), 1, f.request(2, nil))
	require.NoError(t, err)
	assert.Nil(t, out.SubstitutePartID)
	assert.Equal(t, 5, f.stock(t, f.sold.ID))
	assert.Equal(t, 4, f.stock(t, f.substitute.ID))
}

func TestCreate_MismaPieza(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	out, err := f.uc.Create(ctx, 1, f.request(2, &f.sold.ID))
	require.NoError(t, err)
	assert.Equal(t, 3, f.stock(t, f.sold.ID), "delta neto cero")

	movs, err := memory.NewStockMovementRepository(f.store).ListByPart(ctx, f.sold.ID, 10)
	require.NoError(t, err)
	var exchangeMovs int
	for _, m := range movs {
		if m.ReferenceID == out.ID && (m.Source == entity.SourceExchangeReturn || m.Source == entity.SourceExchangeSubstitute) {
			exchangeMovs++
		}
	}
	assert.Equal(t, 2, exchangeMovs, "ambos movimientos quedan registrados")
}

func TestCreate_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := &entity.Part{Name: "Descontinuado", QuantityInStock: 10, Active: false}
	scarce := &entity.Part{Name: "Escasso", QuantityInStock: 0, Active: true}
	require.NoError(t, memory.NewPartRepository(f.store).Create(ctx, inactive))
	require.NoError(t, memory.NewPartRepository(f.store).Create(ctx, scarce))
	notSold := f.substitute.ID

	cases := []struct {
		name string
		in   dto.CreateExchangeRequest
		want error
	}{
		{"cantidad cero", f.request(0, nil), domain.ErrInvalidInput},
		{"sin motivo", dto.CreateExchangeRequest{SaleID: f.saleID, OriginalPartID: f.sold.ID, Quantity: 1}, domain.ErrInvalidInput},
		{"venta inexistente", dto.CreateExchangeRequest{SaleID: 999, OriginalPartID: f.sold.ID, Quantity: 1, Reason: "x"}, domain.ErrNotFound},
		{"pieza fuera de la venta", dto.CreateExchangeRequest{SaleID: f.saleID, OriginalPartID: notSold, Quantity: 1, Reason: "x"}, domain.ErrNotFound},
		{"sustituta inactiva", f.request(1, &inactive.ID), domain.ErrInvalidInput},
		{"sustituta sin stock", f.request(1, &scarce.ID), domain.ErrInsufficientStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, 1, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 3, f.stock(t, f.sold.ID))
}

func TestCreate_VentaNoCompletada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pending, err := f.sales.Create(ctx, 1, dto.CreateSaleRequest{
		CustomerID:      1,
		PaymentMethodID: 1,
		Items:           []dto.SaleItemRequest{{PartID: f.sold.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(80)}},
	})
	require.NoError(t, err)

	req := f.request(1, nil)
	req.SaleID = pending.ID
	_, err = f.uc.Create(ctx, 1, req)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancel_RevierteDeltas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e, err := f.uc.Create(ctx, 1, f.request(1, &f.substitute.ID))
	require.NoError(t, err)

	out, err := f.uc.Cancel(ctx, 1, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", out.Status)
	assert.NotNil(t, out.CancelledAt)
	assert.Equal(t, 3, f.stock(t, f.sold.ID))
	assert.Equal(t, 4, f.stock(t, f.substitute.ID))

	_, err = f.uc.Cancel(ctx, 1, e.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 3, f.stock(t, f.sold.ID))

	_, err = f.uc.Cancel(ctx, 1, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_SinStockDeLaOriginalFalla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e, err := f.uc.Create(ctx, 1, f.request(2, nil))
	require.NoError(t, err)
	require.Equal(t, 5, f.stock(t, f.sold.ID))

	// Las unidades devueltas se vendieron de nuevo: la reversión no puede dejar stock negativo.
	_, err = f.sales.Create(ctx, 1, dto.CreateSaleRequest{
		CustomerID:      1,
		PaymentMethodID: 1,
		Items:           []dto.SaleItemRequest{{PartID: f.sold.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(80)}},
	})
	require.NoError(t, err)

	_, err = f.uc.Cancel(ctx, 1, e.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	got, err := f.uc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, 1, f.stock(t, f.sold.ID))
}

func TestListBySale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Create(ctx, 1, f.request(1, nil))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, 1, f.request(1, &f.substitute.ID))
	require.NoError(t, err)

	list, err := f.uc.ListBySale(ctx, f.saleID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	active, err := f.uc.List(ctx, dto.ExchangeFilter{Status: "active"})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	_, err = f.uc.ListBySale(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
