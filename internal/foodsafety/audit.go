package foodsafety

import (
	"time"

	"github.com/google/uuid"
)

type AuditID = uuid.UUID

// Audit statuses.
const (
	AuditScheduled  = "scheduled"
	AuditInProgress = "in_progress"
	AuditCompleted  = "completed"
)

// Audit is a scheduled or completed food safety inspection.
type Audit struct {
	ID          AuditID      `json:"id" bson:"_id"`
	Auditor     string       `json:"auditor" bson:"auditor"`
	Status      string       `json:"status" bson:"status"`
	ScheduledAt time.Time    `json:"scheduled_at" bson:"scheduled_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	Score       *int         `json:"score,omitempty" bson:"score,omitempty"`
	Findings    []AuditEntry `json:"findings,omitempty" bson:"findings,omitempty"`
	Notes       string       `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// AuditEntry is a single finding recorded during an audit.
type AuditEntry struct {
	Area     string `json:"area" bson:"area"`
	Finding  string `json:"finding" bson:"finding"`
	Severity string `json:"severity" bson:"severity"`
	Passed   bool   `json:"passed" bson:"passed"`
}

func NewAudit() *Audit {
	return &Audit{
		ID:     uuid.New(),
		Status: AuditScheduled,
	}
}

func (a *Audit) EnsureID() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
}

func (a *Audit) GetID() uuid.UUID {
	return a.ID
}

func (a *Audit) SetID(id uuid.UUID) {
	a.ID = id
}

func (a *Audit) ResourceType() string {
	return "foodsafety/audit"
}

// Complete closes the audit with a score.
func (a *Audit) Complete(score int) {
	now := time.Now()
	a.Status = AuditCompleted
	a.CompletedAt = &now
	a.Score = &score
}

func (a *Audit) BeforeCreate() {
	a.EnsureID()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = AuditScheduled
	}
}

func (a *Audit) BeforeUpdate() {
	a.UpdatedAt = time.Now()
}
