package tables

import (
	"context"
	"strings"

	"github.com/brigadeclub/brigade/pkg/enums/tablestatus"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateTableCreate validates a table creation request.
func ValidateTableCreate(ctx context.Context, req TableCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Number) == "" {
		errors = append(errors, ValidationError{
			Field:   "number",
			Message: "number is required",
		})
	}

	if req.Capacity <= 0 {
		errors = append(errors, ValidationError{
			Field:   "capacity",
			Message: "capacity must be positive",
		})
	}

	return errors
}

// ValidateReservationCreate validates a reservation creation request.
func ValidateReservationCreate(ctx context.Context, req ReservationCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.GuestName) == "" {
		errors = append(errors, ValidationError{
			Field:   "guest_name",
			Message: "guest_name is required",
		})
	}

	if req.PartySize <= 0 {
		errors = append(errors, ValidationError{
			Field:   "party_size",
			Message: "party_size must be positive",
		})
	}

	if req.At.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "at",
			Message: "at is required",
		})
	}

	return errors
}

// ValidateStatus checks that a status string names a known table status.
func ValidateStatus(status string) bool {
	return tablestatus.ByName(status) != nil
}
