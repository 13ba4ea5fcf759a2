package foodsafety

import (
	"time"

	"github.com/google/uuid"
)

type ControlPointID = uuid.UUID

// ControlPoint is a monitored step in food handling with a safe temperature
// band and a check cadence.
type ControlPoint struct {
	ID            ControlPointID `json:"id" bson:"_id"`
	Name          string         `json:"name" bson:"name"`
	Location      string         `json:"location" bson:"location"`
	MinSafeC      float64        `json:"min_safe_c" bson:"min_safe_c"`
	MaxSafeC      float64        `json:"max_safe_c" bson:"max_safe_c"`
	CheckEverySec int            `json:"check_every_sec" bson:"check_every_sec"`
	LastCheckedAt *time.Time     `json:"last_checked_at,omitempty" bson:"last_checked_at,omitempty"`
	Active        bool           `json:"active" bson:"active"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
}

func NewControlPoint() *ControlPoint {
	return &ControlPoint{
		ID:     uuid.New(),
		Active: true,
	}
}

func (c *ControlPoint) EnsureID() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
}

func (c *ControlPoint) GetID() uuid.UUID {
	return c.ID
}

func (c *ControlPoint) SetID(id uuid.UUID) {
	c.ID = id
}

func (c *ControlPoint) ResourceType() string {
	return "foodsafety/controlpoint"
}

// CheckDue reports whether the point is overdue for a check at the given
// time. Never-checked points are always due.
func (c *ControlPoint) CheckDue(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.LastCheckedAt == nil {
		return true
	}
	return now.Sub(*c.LastCheckedAt) >= time.Duration(c.CheckEverySec)*time.Second
}

// MarkChecked records a completed check.
func (c *ControlPoint) MarkChecked(at time.Time) {
	c.LastCheckedAt = &at
}

func (c *ControlPoint) BeforeCreate() {
	c.EnsureID()
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *ControlPoint) BeforeUpdate() {
	c.UpdatedAt = time.Now()
}
