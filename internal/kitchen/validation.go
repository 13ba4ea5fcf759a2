package kitchen

import (
	"context"
	"strings"

	"github.com/brigadeclub/brigade/pkg/enums/stationtype"
)

func ValidateStationCreate(ctx context.Context, req StationCreateRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, "name is required")
	}

	if stationtype.ByName(req.Type) == nil {
		errors = append(errors, "invalid station type")
	}

	if req.Capacity <= 0 {
		errors = append(errors, "capacity must be greater than 0")
	}

	return errors
}

func ValidateTimerCreate(ctx context.Context, req TimerCreateRequest) []string {
	var errors []string

	if strings.TrimSpace(req.Label) == "" {
		errors = append(errors, "label is required")
	}

	if req.DurationSec <= 0 {
		errors = append(errors, "duration_sec must be greater than 0")
	}

	return errors
}
