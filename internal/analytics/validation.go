package analytics

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateMetricCreate validates a kitchen metric.
func ValidateMetricCreate(ctx context.Context, req MetricCreateRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if req.Target < 0 {
		errors = append(errors, ValidationError{
			Field:   "target",
			Message: "target cannot be negative",
		})
	}

	return errors
}

// ValidateOrderAnalyticsCreate validates a per-period order aggregate.
func ValidateOrderAnalyticsCreate(ctx context.Context, req OrderAnalyticsCreateRequest) []ValidationError {
	var errors []ValidationError

	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "period",
			Message: "period_start and period_end are required",
		})
	} else if !req.PeriodStart.Before(req.PeriodEnd) {
		errors = append(errors, ValidationError{
			Field:   "period",
			Message: "period_start must precede period_end",
		})
	}

	for field, count := range map[string]int{
		"total_orders":     req.TotalOrders,
		"completed_orders": req.CompletedOrders,
		"cancelled_orders": req.CancelledOrders,
	} {
		if count < 0 {
			errors = append(errors, ValidationError{
				Field:   field,
				Message: "cannot be negative",
			})
		}
	}

	if req.CompletedOrders+req.CancelledOrders > req.TotalOrders {
		errors = append(errors, ValidationError{
			Field:   "total_orders",
			Message: "completed plus cancelled cannot exceed total",
		})
	}

	return errors
}

// ValidateStaffAnalyticsCreate validates a per-period staff aggregate.
func ValidateStaffAnalyticsCreate(ctx context.Context, req StaffAnalyticsCreateRequest) []ValidationError {
	var errors []ValidationError

	if req.UserID == uuid.Nil {
		errors = append(errors, ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() {
		errors = append(errors, ValidationError{
			Field:   "period",
			Message: "period_start and period_end are required",
		})
	} else if !req.PeriodStart.Before(req.PeriodEnd) {
		errors = append(errors, ValidationError{
			Field:   "period",
			Message: "period_start must precede period_end",
		})
	}

	if req.OrdersHandled < 0 {
		errors = append(errors, ValidationError{
			Field:   "orders_handled",
			Message: "cannot be negative",
		})
	}

	if req.ErrorCount < 0 {
		errors = append(errors, ValidationError{
			Field:   "error_count",
			Message: "cannot be negative",
		})
	}

	return errors
}
