package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pecas-api/internal/domain/entity"
	"github.com/jhoicas/pecas-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPurchaseTotal(t *testing.T) {
	items := []entity.PurchaseItem{
		{PartID: 7, Quantity: 3, UnitCost: dec("10.00")},
		{PartID: 8, Quantity: 2, UnitCost: dec("0.10")},
	}
	assert.True(t, dec("30.20").Equal(pricing.PurchaseTotal(items)), "3×10.00 + 2×0.10")
	assert.True(t, decimal.Zero.Equal(pricing.PurchaseTotal(nil)))
}

func TestSaleTotal(t *testing.T) {
	items := []entity.SaleItem{
		{PartID: 1, Quantity: 2, UnitPrice: dec("150.00"), ItemDiscount: dec("10.00")},
		{PartID: 2, Quantity: 1, UnitPrice: dec("99.90"), ItemDiscount: decimal.Zero},
	}
	assert.True(t, dec("389.90").Equal(pricing.SaleTotal(items, decimal.Zero)))
	assert.True(t, dec("339.90").Equal(pricing.SaleTotal(items, dec("50"))))
	assert.True(t, pricing.SaleTotal(items, dec("400")).IsNegative(), "el total puede quedar negativo; lo rechaza el flujo de ventas")
}

// Sumar 0.10 diez veces debe dar exactamente 1.00 (sin deriva de punto flotante).
func TestSaleTotal_SinDerivaDeRedondeo(t *testing.T) {
	var items []entity.SaleItem
	for i := 0; i < 10; i++ {
		items = append(items, entity.SaleItem{Quantity: 1, UnitPrice: dec("0.10")})
	}
	assert.Equal(t, "1", pricing.SaleTotal(items, decimal.Zero).String())
}

func TestAverageCost(t *testing.T) {
	cases := []struct {
		name     string
		stock    int
		current  string
		qty      int
		unitCost string
		want     string
	}{
		{"sin stock toma el costo de entrada", 0, "0", 3, "10.00", "10.00"},
		{"promedio ponderado", 2, "100.00", 2, "120.00", "110.00"},
		{"redondeo a centavos", 1, "10.00", 2, "10.01", "10.01"},
		{"tercios", 2, "10.00", 1, "11.00", "10.33"},
		{"sin entrada conserva el actual", 4, "7.50", 0, "99", "7.50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.AverageCost(tc.stock, dec(tc.current), tc.qty, dec(tc.unitCost))
			assert.True(t, dec(tc.want).Equal(got), "got %s", got)
		})
	}
}
