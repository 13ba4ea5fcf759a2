package foodsafety

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/severity"
)

type ViolationID = uuid.UUID

// Violation is a recorded food safety breach requiring corrective action.
type Violation struct {
	ID               ViolationID `json:"id" bson:"_id"`
	Kind             string      `json:"kind" bson:"kind"`
	Location         string      `json:"location" bson:"location"`
	Description      string      `json:"description" bson:"description"`
	Severity         string      `json:"severity" bson:"severity"`
	TemperatureLogID *uuid.UUID  `json:"temperature_log_id,omitempty" bson:"temperature_log_id,omitempty"`
	CorrectiveAction string      `json:"corrective_action,omitempty" bson:"corrective_action,omitempty"`
	Resolved         bool        `json:"resolved" bson:"resolved"`
	ResolvedBy       *uuid.UUID  `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
	ResolvedAt       *time.Time  `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" bson:"updated_at"`
}

// Violation kinds.
const (
	ViolationTemperature = "temperature"
	ViolationHygiene     = "hygiene"
	ViolationStorage     = "storage"
	ViolationProcedure   = "procedure"
)

func NewViolation() *Violation {
	return &Violation{
		ID:       uuid.New(),
		Severity: severity.Severities.Low.Code(),
	}
}

func (v *Violation) EnsureID() {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
}

func (v *Violation) GetID() uuid.UUID {
	return v.ID
}

func (v *Violation) SetID(id uuid.UUID) {
	v.ID = id
}

func (v *Violation) ResourceType() string {
	return "foodsafety/violation"
}

// Resolve marks the violation corrected.
func (v *Violation) Resolve(by uuid.UUID, action string) {
	now := time.Now()
	v.Resolved = true
	v.ResolvedBy = &by
	v.ResolvedAt = &now
	if action != "" {
		v.CorrectiveAction = action
	}
}

// IsCritical reports whether the violation carries critical severity.
func (v *Violation) IsCritical() bool {
	return v.Severity == severity.Severities.Critical.Code()
}

func (v *Violation) BeforeCreate() {
	v.EnsureID()
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Severity == "" {
		v.Severity = severity.Severities.Low.Code()
	}
}

func (v *Violation) BeforeUpdate() {
	v.UpdatedAt = time.Now()
}
