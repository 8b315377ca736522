package pricing

import "github.com/shopspring/decimal"

// AverageCost costo promedio ponderado tras una entrada, redondeado a centavos:
// ((stock × costo actual) + (cantidad × costo de entrada)) / (stock + cantidad).
// Con stock negativo o cero se toma solo el costo de entrada.
func AverageCost(stock int, current decimal.Decimal, qty int, unitCost decimal.Decimal) decimal.Decimal {
	if stock < 0 {
		stock = 0
	}
	sum := stock + qty
	if sum <= 0 {
		return current
	}
	num := decimal.NewFromInt(int64(stock)).Mul(current).
		Add(decimal.NewFromInt(int64(qty)).Mul(unitCost))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(2)
}
