package costs

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/costcategory"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateCostCreate validates a cost record.
func ValidateCostCreate(ctx context.Context, req CostCreateRequest) []ValidationError {
	var errors []ValidationError

	if req.Category != "" && costcategory.ByName(req.Category) == nil {
		errors = append(errors, ValidationError{
			Field:   "category",
			Message: "unknown category",
		})
	}

	if strings.TrimSpace(req.Description) == "" {
		errors = append(errors, ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if req.Amount < 0 {
		errors = append(errors, ValidationError{
			Field:   "amount",
			Message: "amount cannot be negative",
		})
	}

	return errors
}

// ValidateCostCenterCreate validates a cost center.
func ValidateCostCenterCreate(ctx context.Context, req CostCenterCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if strings.TrimSpace(req.Period) == "" {
		errors = append(errors, ValidationError{
			Field:   "period",
			Message: "period is required",
		})
	}

	if req.Budget < 0 {
		errors = append(errors, ValidationError{
			Field:   "budget",
			Message: "budget cannot be negative",
		})
	}

	return errors
}

// ValidateRecipeCostCreate validates a recipe cost breakdown.
func ValidateRecipeCostCreate(ctx context.Context, req RecipeCostCreateRequest) []ValidationError {
	var errors []ValidationError

	if req.RecipeID == uuid.Nil {
		errors = append(errors, ValidationError{
			Field:   "recipe_id",
			Message: "recipe_id is required",
		})
	}

	for field, amount := range map[string]float64{
		"ingredient_cost": req.IngredientCost,
		"labor_cost":      req.LaborCost,
		"overhead_cost":   req.OverheadCost,
		"menu_price":      req.MenuPrice,
	} {
		if amount < 0 {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "cannot be negative",
			})
		}
	}

	return errors
}
