package event

import "time"

const (
	FoodSafetyTopic            = "foodsafety.alerts"
	EventTemperatureOutOfRange = "foodsafety.temperature.out_of_range"
	EventViolationCreated      = "foodsafety.violation.created"
	EventViolationResolved     = "foodsafety.violation.resolved"
)

// TemperatureAlertEvent is emitted when a recorded reading falls outside its
// safe range.
type TemperatureAlertEvent struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	LogID       string    `json:"log_id"`
	Location    string    `json:"location"`
	ReadingC    float64   `json:"reading_c"`
	MinSafeC    float64   `json:"min_safe_c"`
	MaxSafeC    float64   `json:"max_safe_c"`
	ViolationID string    `json:"violation_id,omitempty"`
	Severity    string    `json:"severity,omitempty"`
}

type ViolationEvent struct {
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	ViolationID string    `json:"violation_id"`
	Location    string    `json:"location"`
	Severity    string    `json:"severity"`
	ResolvedBy  string    `json:"resolved_by,omitempty"`
}
