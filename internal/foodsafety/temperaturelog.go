package foodsafety

import (
	"time"

	"github.com/google/uuid"
)

type TemperatureLogID = uuid.UUID

// TemperatureLog is a single thermometer reading taken at a monitored
// location (walk-in, freezer, hot-hold well, a dish at the pass).
type TemperatureLog struct {
	ID                       TemperatureLogID `json:"id" bson:"_id"`
	Location                 string           `json:"location" bson:"location"`
	Equipment                string           `json:"equipment,omitempty" bson:"equipment,omitempty"`
	ReadingC                 float64          `json:"reading_c" bson:"reading_c"`
	MinSafeC                 float64          `json:"min_safe_c" bson:"min_safe_c"`
	MaxSafeC                 float64          `json:"max_safe_c" bson:"max_safe_c"`
	RequiresCorrectiveAction bool             `json:"requires_corrective_action" bson:"requires_corrective_action"`
	RecordedBy               *uuid.UUID       `json:"recorded_by,omitempty" bson:"recorded_by,omitempty"`
	RecordedAt               time.Time        `json:"recorded_at" bson:"recorded_at"`
	Notes                    string           `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt                time.Time        `json:"created_at" bson:"created_at"`
}

func NewTemperatureLog() *TemperatureLog {
	return &TemperatureLog{
		ID: uuid.New(),
	}
}

func (l *TemperatureLog) EnsureID() {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
}

func (l *TemperatureLog) GetID() uuid.UUID {
	return l.ID
}

func (l *TemperatureLog) SetID(id uuid.UUID) {
	l.ID = id
}

func (l *TemperatureLog) ResourceType() string {
	return "foodsafety/temperature"
}

// OutOfRange reports whether the reading falls outside the safe band.
func (l *TemperatureLog) OutOfRange() bool {
	return l.ReadingC < l.MinSafeC || l.ReadingC > l.MaxSafeC
}

// NeedsViolation reports whether the reading must raise a violation: outside
// the safe band and flagged for corrective action. An out-of-range reading
// without the flag is recorded but raises nothing.
func (l *TemperatureLog) NeedsViolation() bool {
	return l.OutOfRange() && l.RequiresCorrectiveAction
}

func (l *TemperatureLog) BeforeCreate() {
	l.EnsureID()
	now := time.Now()
	l.CreatedAt = now
	if l.RecordedAt.IsZero() {
		l.RecordedAt = now
	}
}
