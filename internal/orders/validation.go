package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/orderstatus"
)

func ValidateOrderCreate(ctx context.Context, req OrderCreateRequest) []string {
	var errors []string

	if req.CustomerID == uuid.Nil {
		errors = append(errors, "customer_id is required")
	}

	if len(req.Items) == 0 {
		errors = append(errors, "at least one item is required")
	}

	for _, item := range req.Items {
		if item.RecipeID == uuid.Nil {
			errors = append(errors, "item recipe_id is required")
		}
		if item.Quantity <= 0 {
			errors = append(errors, "item quantity must be greater than 0")
		}
		if item.Price < 0 {
			errors = append(errors, "item price cannot be negative")
		}
	}

	if req.Priority < 0 {
		errors = append(errors, "priority cannot be negative")
	}

	return errors
}

func ValidateStatus(ctx context.Context, status string) []string {
	var errors []string

	if orderstatus.ByName(status) == nil {
		errors = append(errors, "invalid status")
	}

	return errors
}
