package foodsafety

import (
	"time"

	"github.com/google/uuid"
)

// TemperatureLogCreateRequest is the payload for recording a reading.
type TemperatureLogCreateRequest struct {
	Location                 string     `json:"location"`
	Equipment                string     `json:"equipment"`
	ReadingC                 float64    `json:"reading_c"`
	MinSafeC                 float64    `json:"min_safe_c"`
	MaxSafeC                 float64    `json:"max_safe_c"`
	RequiresCorrectiveAction bool       `json:"requires_corrective_action"`
	RecordedBy               *uuid.UUID `json:"recorded_by"`
	RecordedAt               *time.Time `json:"recorded_at"`
	Notes                    string     `json:"notes"`
}

// ViolationCreateRequest is the payload for recording a violation by hand
// (non-temperature kinds mostly).
type ViolationCreateRequest struct {
	Kind             string `json:"kind"`
	Location         string `json:"location"`
	Description      string `json:"description"`
	Severity         string `json:"severity"`
	CorrectiveAction string `json:"corrective_action"`
}

// ViolationResolveRequest marks a violation corrected.
type ViolationResolveRequest struct {
	ResolvedBy       uuid.UUID `json:"resolved_by"`
	CorrectiveAction string    `json:"corrective_action"`
}

// ControlPointCreateRequest is the payload for registering a control point.
type ControlPointCreateRequest struct {
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	MinSafeC      float64 `json:"min_safe_c"`
	MaxSafeC      float64 `json:"max_safe_c"`
	CheckEverySec int     `json:"check_every_sec"`
}

// ControlPointCheckRequest records a check against a control point. The
// reading is validated against the point's own safe band.
type ControlPointCheckRequest struct {
	ReadingC   float64    `json:"reading_c"`
	RecordedBy *uuid.UUID `json:"recorded_by"`
	Notes      string     `json:"notes"`
}

// AuditCreateRequest is the payload for scheduling an audit.
type AuditCreateRequest struct {
	Auditor     string    `json:"auditor"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

// AuditCompleteRequest closes an audit with its findings.
type AuditCompleteRequest struct {
	Score    int          `json:"score"`
	Findings []AuditEntry `json:"findings"`
	Notes    string       `json:"notes"`
}
