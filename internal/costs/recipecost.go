package costs

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/money"
)

type RecipeCostID = uuid.UUID

// RecipeCost is the per-plate cost breakdown of a recipe against its menu
// price.
type RecipeCost struct {
	ID             RecipeCostID `json:"id" bson:"_id"`
	RecipeID       uuid.UUID    `json:"recipe_id" bson:"recipe_id"`
	IngredientCost money.Money  `json:"ingredient_cost" bson:"ingredient_cost"`
	LaborCost      money.Money  `json:"labor_cost" bson:"labor_cost"`
	OverheadCost   money.Money  `json:"overhead_cost" bson:"overhead_cost"`
	MenuPrice      money.Money  `json:"menu_price" bson:"menu_price"`
	CalculatedAt   time.Time    `json:"calculated_at" bson:"calculated_at"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}

func NewRecipeCost() *RecipeCost {
	return &RecipeCost{
		ID: uuid.New(),
	}
}

func (r *RecipeCost) EnsureID() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
}

func (r *RecipeCost) GetID() uuid.UUID {
	return r.ID
}

func (r *RecipeCost) SetID(id uuid.UUID) {
	r.ID = id
}

func (r *RecipeCost) ResourceType() string {
	return "recipecost"
}

// TotalCost is the sum of all cost components.
func (r *RecipeCost) TotalCost() money.Money {
	return r.IngredientCost.Add(r.LaborCost).Add(r.OverheadCost)
}

// Margin is menu price minus total cost.
func (r *RecipeCost) Margin() money.Money {
	return r.MenuPrice.Sub(r.TotalCost())
}

func (r *RecipeCost) BeforeCreate() {
	r.EnsureID()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.CalculatedAt.IsZero() {
		r.CalculatedAt = now
	}
}

func (r *RecipeCost) BeforeUpdate() {
	r.UpdatedAt = time.Now()
}
