package menu

// RecipeCreateRequest is the payload for creating a recipe. Price comes in as
// major units and is converted to cents at the boundary.
type RecipeCreateRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Category     string             `json:"category"`
	Difficulty   string             `json:"difficulty"`
	PrepTimeMin  int                `json:"prep_time_min"`
	CookTimeMin  int                `json:"cook_time_min"`
	Servings     int                `json:"servings"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Price        float64            `json:"price"`
	DietaryTags  []string           `json:"dietary_tags"`
	Allergens    []string           `json:"allergens"`
}

// RecipeUpdateRequest is the payload for partial recipe updates.
type RecipeUpdateRequest struct {
	Name         string             `json:"name"`
	Description  *string            `json:"description"`
	Category     string             `json:"category"`
	Difficulty   string             `json:"difficulty"`
	PrepTimeMin  *int               `json:"prep_time_min"`
	CookTimeMin  *int               `json:"cook_time_min"`
	Servings     *int               `json:"servings"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	Price        *float64           `json:"price"`
	DietaryTags  []string           `json:"dietary_tags"`
	Allergens    []string           `json:"allergens"`
	Active       *bool              `json:"active"`
}
