package costs

import (
	"github.com/shopspring/decimal"

	"github.com/brigadeclub/brigade/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// BudgetVariancePercent is (actual - budget) / budget * 100, rounded to two
// decimal places. A zero budget clamps to 100.0: any spend against no budget
// reads as fully over.
func BudgetVariancePercent(budget, actual money.Money) float64 {
	if budget.IsZero() {
		return 100.0
	}

	variance := actual.Decimal().Sub(budget.Decimal()).
		Div(budget.Decimal()).
		Mul(hundred).
		Round(2)
	result, _ := variance.Float64()
	return result
}

// CostEfficiencyPercent is budget / actual * 100: above 100 means spending
// under budget. Zero actual spend reads as fully efficient.
func CostEfficiencyPercent(budget, actual money.Money) float64 {
	if actual.IsZero() {
		return 100.0
	}

	efficiency := budget.Decimal().Div(actual.Decimal()).Mul(hundred).Round(2)
	result, _ := efficiency.Float64()
	return result
}

// MarginPercent is (price - cost) / price * 100. A zero price yields 0.0.
func MarginPercent(price, cost money.Money) float64 {
	if price.IsZero() {
		return 0.0
	}

	margin := price.Decimal().Sub(cost.Decimal()).
		Div(price.Decimal()).
		Mul(hundred).
		Round(2)
	result, _ := margin.Float64()
	return result
}
