package menu

import (
	"context"
	"fmt"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateRecipeCreate validates a recipe creation request.
func ValidateRecipeCreate(ctx context.Context, req RecipeCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if strings.TrimSpace(req.Category) == "" {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	}

	if req.Difficulty != "" && !validDifficulty(req.Difficulty) {
		errors = append(errors, ValidationError{
			Field:   "difficulty",
			Message: "difficulty must be one of: easy, medium, hard",
		})
	}

	if req.Price < 0 {
		errors = append(errors, ValidationError{
			Field:   "price",
			Message: "price cannot be negative",
		})
	}

	if req.PrepTimeMin < 0 {
		errors = append(errors, ValidationError{
			Field:   "prep_time_min",
			Message: "preparation time cannot be negative",
		})
	}

	if req.CookTimeMin < 0 {
		errors = append(errors, ValidationError{
			Field:   "cook_time_min",
			Message: "cook time cannot be negative",
		})
	}

	if req.Servings < 0 {
		errors = append(errors, ValidationError{
			Field:   "servings",
			Message: "servings cannot be negative",
		})
	}

	for i, ing := range req.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("ingredients[%d].name", i),
				Message: "ingredient name is required",
			})
		}
		if ing.Quantity < 0 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("ingredients[%d].quantity", i),
				Message: "ingredient quantity cannot be negative",
			})
		}
	}

	return errors
}

func validDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
