package costs

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

// ProfitabilityReport summarizes a cost center's spend against budget for
// the period, with per-category totals.
type ProfitabilityReport struct {
	CostCenterID      uuid.UUID              `json:"cost_center_id"`
	CostCenterName    string                 `json:"cost_center_name"`
	Period            string                 `json:"period"`
	Budget            money.Money            `json:"budget"`
	ActualSpend       money.Money            `json:"actual_spend"`
	VariancePercent   float64                `json:"variance_percent"`
	EfficiencyPercent float64                `json:"efficiency_percent"`
	ByCategory        map[string]money.Money `json:"by_category"`
	CostCount         int                    `json:"cost_count"`
	GeneratedAt       time.Time              `json:"generated_at"`
}

// RecipeProfitability is the margin picture for one recipe.
type RecipeProfitability struct {
	RecipeID      uuid.UUID   `json:"recipe_id"`
	TotalCost     money.Money `json:"total_cost"`
	MenuPrice     money.Money `json:"menu_price"`
	Margin        money.Money `json:"margin"`
	MarginPercent float64     `json:"margin_percent"`
}

// Reporter builds profitability reports from stored costs.
type Reporter struct {
	centers     CostCenterRepo
	costs       CostRepo
	recipeCosts RecipeCostRepo
}

func NewReporter(centers CostCenterRepo, costs CostRepo, recipeCosts RecipeCostRepo) *Reporter {
	return &Reporter{
		centers:     centers,
		costs:       costs,
		recipeCosts: recipeCosts,
	}
}

// CenterReport aggregates every cost recorded against the center.
func (r *Reporter) CenterReport(ctx context.Context, centerID uuid.UUID) (*ProfitabilityReport, error) {
	center, err := r.centers.Get(ctx, centerID)
	if err != nil {
		return nil, err
	}

	recorded, err := r.costs.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	actual := money.FromCents(0)
	byCategory := make(map[string]money.Money)
	for _, cost := range recorded {
		actual = actual.Add(cost.Amount)
		byCategory[cost.Category] = byCategory[cost.Category].Add(cost.Amount)
	}

	return &ProfitabilityReport{
		CostCenterID:      center.ID,
		CostCenterName:    center.Name,
		Period:            center.Period,
		Budget:            center.Budget,
		ActualSpend:       actual,
		VariancePercent:   BudgetVariancePercent(center.Budget, actual),
		EfficiencyPercent: CostEfficiencyPercent(center.Budget, actual),
		ByCategory:        byCategory,
		CostCount:         len(recorded),
		GeneratedAt:       time.Now(),
	}, nil
}

// RecipeReport computes the margin picture for one recipe from its stored
// cost breakdown.
func (r *Reporter) RecipeReport(ctx context.Context, recipeID uuid.UUID) (*RecipeProfitability, error) {
	recipeCost, err := r.recipeCosts.GetByRecipe(ctx, recipeID)
	if err != nil {
		return nil, fail.FromErr("no cost breakdown for recipe", err)
	}

	total := recipeCost.TotalCost()
	return &RecipeProfitability{
		RecipeID:      recipeID,
		TotalCost:     total,
		MenuPrice:     recipeCost.MenuPrice,
		Margin:        recipeCost.Margin(),
		MarginPercent: MarginPercent(recipeCost.MenuPrice, total),
	}, nil
}
