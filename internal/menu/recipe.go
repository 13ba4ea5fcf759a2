package menu

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/money"
)

type RecipeID = uuid.UUID

// Difficulty levels for a recipe.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe is a dish definition: what goes in it, how to make it, and what it
// sells for.
type Recipe struct {
	ID           RecipeID           `json:"id" bson:"_id"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	Category     string             `json:"category" bson:"category"`
	Difficulty   string             `json:"difficulty" bson:"difficulty"`
	PrepTimeMin  int                `json:"prep_time_min" bson:"prep_time_min"`
	CookTimeMin  int                `json:"cook_time_min" bson:"cook_time_min"`
	Servings     int                `json:"servings" bson:"servings"`
	Ingredients  []RecipeIngredient `json:"ingredients" bson:"ingredients"`
	Instructions []string           `json:"instructions,omitempty" bson:"instructions,omitempty"`
	Price        money.Money        `json:"price" bson:"price"`
	DietaryTags  []string           `json:"dietary_tags,omitempty" bson:"dietary_tags,omitempty"`
	Allergens    []string           `json:"allergens,omitempty" bson:"allergens,omitempty"`
	Active       bool               `json:"active" bson:"active"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// RecipeIngredient is one line of a recipe's ingredient list.
type RecipeIngredient struct {
	Name     string  `json:"name" bson:"name"`
	Quantity float64 `json:"quantity" bson:"quantity"`
	Unit     string  `json:"unit,omitempty" bson:"unit,omitempty"`
	Notes    string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

func NewRecipe() *Recipe {
	return &Recipe{
		ID:     uuid.New(),
		Active: true,
	}
}

func (r *Recipe) EnsureID() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
}

func (r *Recipe) GetID() uuid.UUID {
	return r.ID
}

func (r *Recipe) SetID(id uuid.UUID) {
	r.ID = id
}

func (r *Recipe) ResourceType() string {
	return "recipe"
}

// TotalTimeMin is prep plus cook time.
func (r *Recipe) TotalTimeMin() int {
	return r.PrepTimeMin + r.CookTimeMin
}

// HasTag reports whether the recipe carries the given dietary tag.
func (r *Recipe) HasTag(tag string) bool {
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

func (r *Recipe) BeforeCreate() {
	r.EnsureID()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Ingredients == nil {
		r.Ingredients = make([]RecipeIngredient, 0)
	}
}

func (r *Recipe) BeforeUpdate() {
	r.UpdatedAt = time.Now()
}
