package foodsafety

import (
	"context"
	"strings"

	"github.com/brigadeclub/brigade/pkg/enums/severity"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateTemperatureLogCreate validates a reading before recording it.
func ValidateTemperatureLogCreate(ctx context.Context, req TemperatureLogCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Location) == "" {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	if req.MinSafeC >= req.MaxSafeC {
		errors = append(errors, ValidationError{
			Field:   "min_safe_c",
			Message: "min_safe_c must be below max_safe_c",
		})
	}

	return errors
}

// ValidateViolationCreate validates a manually recorded violation.
func ValidateViolationCreate(ctx context.Context, req ViolationCreateRequest) []ValidationError {
	var errors []ValidationError

	switch req.Kind {
	case ViolationTemperature, ViolationHygiene, ViolationStorage, ViolationProcedure:
	case "":
		errors = append(errors, ValidationError{
			Field:   "kind",
			Message: "kind is required",
		})
	default:
		errors = append(errors, ValidationError{
			Field:   "kind",
			Message: "unknown violation kind",
		})
	}

	if strings.TrimSpace(req.Location) == "" {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	if strings.TrimSpace(req.Description) == "" {
		errors = append(errors, ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if req.Severity != "" && severity.ByName(req.Severity) == nil {
		errors = append(errors, ValidationError{
			Field:   "severity",
			Message: "unknown severity",
		})
	}

	return errors
}

// ValidateControlPointCreate validates a control point registration.
func ValidateControlPointCreate(ctx context.Context, req ControlPointCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if strings.TrimSpace(req.Location) == "" {
		errors = append(errors, ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	if req.MinSafeC >= req.MaxSafeC {
		errors = append(errors, ValidationError{
			Field:   "min_safe_c",
			Message: "min_safe_c must be below max_safe_c",
		})
	}

	if req.CheckEverySec <= 0 {
		errors = append(errors, ValidationError{
			Field:   "check_every_sec",
			Message: "check_every_sec must be positive",
		})
	}

	return errors
}

// ValidateAuditCreate validates an audit booking.
func ValidateAuditCreate(ctx context.Context, req AuditCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Auditor) == "" {
		errors = append(errors, ValidationError{
			Field:   "auditor",
			Message: "auditor is required",
		})
	}

	if req.ScheduledAt.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "scheduled_at",
			Message: "scheduled_at is required",
		})
	}

	return errors
}
