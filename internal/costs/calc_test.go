package costs

import (
	"testing"

	"github.com/brigadeclub/brigade/pkg/money"
)

func TestBudgetVariancePercent(t *testing.T) {
	tests := []struct {
		name   string
		budget int64
		actual int64
		want   float64
	}{
		{"overBudget", 100000, 110000, 10.0},
		{"underBudget", 100000, 90000, -10.0},
		{"onBudget", 100000, 100000, 0.0},
		{"zeroBudget", 0, 50000, 100.0},
		{"zeroBudgetZeroSpend", 0, 0, 100.0},
		{"rounded", 30000, 40000, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BudgetVariancePercent(money.FromCents(tt.budget), money.FromCents(tt.actual))
			if got != tt.want {
				t.Errorf("BudgetVariancePercent(%d, %d) = %v, want %v", tt.budget, tt.actual, got, tt.want)
			}
		})
	}
}

func TestCostEfficiencyPercent(t *testing.T) {
	tests := []struct {
		name   string
		budget int64
		actual int64
		want   float64
	}{
		{"underBudget", 100000, 90000, 111.11},
		{"overBudget", 100000, 110000, 90.91},
		{"onBudget", 100000, 100000, 100.0},
		{"zeroSpend", 100000, 0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CostEfficiencyPercent(money.FromCents(tt.budget), money.FromCents(tt.actual))
			if got != tt.want {
				t.Errorf("CostEfficiencyPercent(%d, %d) = %v, want %v", tt.budget, tt.actual, got, tt.want)
			}
		})
	}
}

func TestMarginPercent(t *testing.T) {
	tests := []struct {
		name  string
		price int64
		cost  int64
		want  float64
	}{
		{"healthyMargin", 1450, 500, 65.52},
		{"breakEven", 1450, 1450, 0.0},
		{"lossMaker", 1000, 1200, -20.0},
		{"zeroPrice", 0, 500, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarginPercent(money.FromCents(tt.price), money.FromCents(tt.cost))
			if got != tt.want {
				t.Errorf("MarginPercent(%d, %d) = %v, want %v", tt.price, tt.cost, got, tt.want)
			}
		})
	}
}
