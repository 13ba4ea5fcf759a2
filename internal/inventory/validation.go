package inventory

import (
	"context"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateItemCreate validates an inventory item creation request.
func ValidateItemCreate(ctx context.Context, req ItemCreateRequest) []ValidationError {
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

	if req.Quantity < 0 {
		errors = append(errors, ValidationError{
			Field:   "quantity",
			Message: "quantity cannot be negative",
		})
	}

	if req.ReorderLevel < 0 {
		errors = append(errors, ValidationError{
			Field:   "reorder_level",
			Message: "reorder level cannot be negative",
		})
	}

	if req.UnitCost < 0 {
		errors = append(errors, ValidationError{
			Field:   "unit_cost",
			Message: "unit cost cannot be negative",
		})
	}

	return errors
}
