package analytics

import (
	"time"

	"github.com/google/uuid"
)

type MetricID = uuid.UUID

// KitchenMetric is a point-in-time measurement of kitchen performance,
// optionally attributed to a station. Targets are floors: a metric meets its
// target when the measured value reaches it.
type KitchenMetric struct {
	ID         MetricID   `json:"id" bson:"_id"`
	Name       string     `json:"name" bson:"name"`
	StationID  *uuid.UUID `json:"station_id,omitempty" bson:"station_id,omitempty"`
	Value      float64    `json:"value" bson:"value"`
	Unit       string     `json:"unit" bson:"unit"`
	Target     float64    `json:"target" bson:"target"`
	RecordedAt time.Time  `json:"recorded_at" bson:"recorded_at"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
}

func NewKitchenMetric() *KitchenMetric {
	return &KitchenMetric{
		ID: uuid.New(),
	}
}

func (m *KitchenMetric) EnsureID() {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
}

func (m *KitchenMetric) GetID() uuid.UUID {
	return m.ID
}

func (m *KitchenMetric) SetID(id uuid.UUID) {
	m.ID = id
}

func (m *KitchenMetric) ResourceType() string {
	return "kitchenmetric"
}

// MeetsTarget reports whether the measured value reached the target. Metrics
// without a target never meet it.
func (m *KitchenMetric) MeetsTarget() bool {
	return m.Target > 0 && m.Value >= m.Target
}

func (m *KitchenMetric) BeforeCreate() {
	m.EnsureID()
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.RecordedAt.IsZero() {
		m.RecordedAt = now
	}
}

func (m *KitchenMetric) BeforeUpdate() {
	m.UpdatedAt = time.Now()
}
