package seeding

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brigadeclub/brigade/internal/foodsafety"
	"github.com/brigadeclub/brigade/internal/menu"
	"github.com/brigadeclub/brigade/pkg/money"
)

// SeedRecipes creates a short demo menu spread across the seeded stations.
func SeedRecipes(ctx context.Context, db *mongo.Database) ([]uuid.UUID, error) {
	specs := []struct {
		name       string
		category   string
		difficulty string
		prepMin    int
		cookMin    int
		servings   int
		price      float64
		tags       []string
	}{
		{"Flat Iron Steak", "mains", menu.DifficultyMedium, 10, 12, 1, 28.50, nil},
		{"Crispy Chicken Sandwich", "mains", menu.DifficultyEasy, 15, 8, 1, 16.00, nil},
		{"Mushroom Risotto", "mains", menu.DifficultyHard, 10, 25, 1, 21.00, []string{"vegetarian"}},
		{"House Salad", "starters", menu.DifficultyEasy, 8, 0, 1, 9.50, []string{"vegetarian", "gluten_free"}},
		{"Lemon Tart", "desserts", menu.DifficultyMedium, 30, 20, 8, 8.00, []string{"vegetarian"}},
	}

	recipes := make([]*menu.Recipe, 0, len(specs))
	for _, spec := range specs {
		recipe := menu.NewRecipe()
		recipe.Name = spec.name
		recipe.Category = spec.category
		recipe.Difficulty = spec.difficulty
		recipe.PrepTimeMin = spec.prepMin
		recipe.CookTimeMin = spec.cookMin
		recipe.Servings = spec.servings
		recipe.Price = money.FromFloat(spec.price)
		recipe.DietaryTags = spec.tags
		recipe.BeforeCreate()
		recipes = append(recipes, recipe)
	}

	return insertAll(ctx, db.Collection("recipes"), recipes)
}

// SeedControlPoints creates the demo HACCP watch list: cold storage and hot
// holding, checked on the cadences a health inspector would expect.
func SeedControlPoints(ctx context.Context, db *mongo.Database) ([]uuid.UUID, error) {
	specs := []struct {
		name     string
		location string
		minSafeC float64
		maxSafeC float64
		everySec int
	}{
		{"Walk-in Cooler", "walk_in", 0, 4, 4 * 3600},
		{"Reach-in Freezer", "freezer", -25, -18, 4 * 3600},
		{"Hot Holding Cabinet", "pass", 63, 80, 2 * 3600},
		{"Dish Machine Rinse", "dish_pit", 82, 95, 8 * 3600},
	}

	points := make([]*foodsafety.ControlPoint, 0, len(specs))
	for _, spec := range specs {
		point := foodsafety.NewControlPoint()
		point.Name = spec.name
		point.Location = spec.location
		point.MinSafeC = spec.minSafeC
		point.MaxSafeC = spec.maxSafeC
		point.CheckEverySec = spec.everySec
		point.BeforeCreate()
		points = append(points, point)
	}

	return insertAll(ctx, db.Collection("control_points"), points)
}
