package kitchen

import (
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/timerstatus"
)

type TimerID = uuid.UUID

// Timer is a kitchen countdown timer, optionally bound to a station.
// Status moves created -> running <-> paused -> completed/cancelled/expired.
// Transitions are recorded, not guarded; the board enforces its own flow.
type Timer struct {
	ID          TimerID    `json:"id" bson:"_id"`
	Label       string     `json:"label" bson:"label"`
	Kind        string     `json:"kind" bson:"kind"`
	Status      string     `json:"status" bson:"status"`
	StationID   *StationID `json:"station_id,omitempty" bson:"station_id,omitempty"`
	DurationSec int        `json:"duration_sec" bson:"duration_sec"`
	ElapsedSec  int        `json:"elapsed_sec" bson:"elapsed_sec"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	StartedAt   *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	PausedAt    *time.Time `json:"paused_at,omitempty" bson:"paused_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}

func (t *Timer) GetID() uuid.UUID {
	return t.ID
}

func (t *Timer) ResourceType() string {
	return "timer"
}

func (t *Timer) SetID(id uuid.UUID) {
	t.ID = id
}

func NewTimer() *Timer {
	return &Timer{
		ID:     aqm.GenerateNewID(),
		Status: timerstatus.Statuses.Created.Code(),
	}
}

func (t *Timer) EnsureID() {
	if t.ID == uuid.Nil {
		t.ID = aqm.GenerateNewID()
	}
}

func (t *Timer) BeforeCreate() {
	t.EnsureID()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
}

func (t *Timer) BeforeUpdate() {
	t.UpdatedAt = time.Now()
}

func (t *Timer) Start() {
	now := time.Now()
	t.Status = timerstatus.Statuses.Running.Code()
	t.StartedAt = &now
	t.PausedAt = nil
	t.UpdatedAt = now
}

func (t *Timer) Pause() {
	now := time.Now()
	if t.StartedAt != nil {
		t.ElapsedSec += int(now.Sub(*t.StartedAt).Seconds())
	}
	t.Status = timerstatus.Statuses.Paused.Code()
	t.PausedAt = &now
	t.UpdatedAt = now
}

func (t *Timer) Resume() {
	now := time.Now()
	t.Status = timerstatus.Statuses.Running.Code()
	t.StartedAt = &now
	t.PausedAt = nil
	t.UpdatedAt = now
}

func (t *Timer) Complete() {
	t.finish(timerstatus.Statuses.Completed.Code())
}

func (t *Timer) Cancel() {
	t.finish(timerstatus.Statuses.Cancelled.Code())
}

func (t *Timer) Expire() {
	t.finish(timerstatus.Statuses.Expired.Code())
}

func (t *Timer) finish(status string) {
	now := time.Now()
	if t.Status == timerstatus.Statuses.Running.Code() && t.StartedAt != nil {
		t.ElapsedSec += int(now.Sub(*t.StartedAt).Seconds())
	}
	t.Status = status
	t.FinishedAt = &now
	t.UpdatedAt = now
}

func (t *Timer) IsTerminal() bool {
	return t.Status == timerstatus.Statuses.Completed.Code() ||
		t.Status == timerstatus.Statuses.Cancelled.Code() ||
		t.Status == timerstatus.Statuses.Expired.Code()
}
