package staff

import (
	"context"
	"strings"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateUserCreate validates a staff account creation request.
func ValidateUserCreate(ctx context.Context, req UserCreateRequest) []ValidationError {
	var errors []ValidationError

	email := NormalizeEmail(req.Email)
	if email == "" {
		errors = append(errors, ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !strings.Contains(email, "@") {
		errors = append(errors, ValidationError{
			Field:   "email",
			Message: "email is invalid",
		})
	}

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.Role == "" {
		errors = append(errors, ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !ValidRole(req.Role) {
		errors = append(errors, ValidationError{
			Field:   "role",
			Message: "unknown role",
		})
	}

	return errors
}
