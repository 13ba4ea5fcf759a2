package costs

import (
	"time"

	"github.com/google/uuid"
)

// CostCreateRequest is the payload for recording a cost. Amounts come in as
// major units and are converted to cents at the boundary.
type CostCreateRequest struct {
	CostCenterID *uuid.UUID `json:"cost_center_id"`
	Category     string     `json:"category"`
	Description  string     `json:"description"`
	Amount       float64    `json:"amount"`
	IncurredAt   *time.Time `json:"incurred_at"`
}

// CostCenterCreateRequest is the payload for opening a cost center.
type CostCenterCreateRequest struct {
	Name        string  `json:"name"`
	Period      string  `json:"period"`
	Budget      float64 `json:"budget"`
	Description string  `json:"description"`
}

// RecipeCostCreateRequest is the payload for storing a recipe cost
// breakdown.
type RecipeCostCreateRequest struct {
	RecipeID       uuid.UUID `json:"recipe_id"`
	IngredientCost float64   `json:"ingredient_cost"`
	LaborCost      float64   `json:"labor_cost"`
	OverheadCost   float64   `json:"overhead_cost"`
	MenuPrice      float64   `json:"menu_price"`
}
