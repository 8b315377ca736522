package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pecas-api/internal/domain"
)

// Los montos se guardan como NUMERIC(12,2).
const MoneyScale = 2

var maxMoney = decimal.New(1, 10) // 10^10

// Money exige como máximo dos decimales y |v| < 10^10.
func Money(field string, v decimal.Decimal) error {
	if !v.Equal(v.Round(MoneyScale)) {
		return domain.Invalid("%s admite como máximo %d decimales", field, MoneyScale)
	}
	if v.Abs().GreaterThanOrEqual(maxMoney) {
		return domain.Invalid("%s fuera de rango", field)
	}
	return nil
}
