package kitchen

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/timerstatus"
	"github.com/brigadeclub/brigade/pkg/fail"
)

func newTestTimer() *Timer {
	timer := NewTimer()
	timer.Label = "Pasta"
	timer.DurationSec = 480
	timer.BeforeCreate()
	return timer
}

func TestTimerLifecycle(t *testing.T) {
	timer := newTestTimer()
	if timer.Status != timerstatus.Statuses.Created.Code() {
		t.Fatalf("new timer status = %s", timer.Status)
	}

	timer.Start()
	if timer.Status != timerstatus.Statuses.Running.Code() || timer.StartedAt == nil {
		t.Errorf("Start() status = %s", timer.Status)
	}

	timer.Pause()
	if timer.Status != timerstatus.Statuses.Paused.Code() || timer.PausedAt == nil {
		t.Errorf("Pause() status = %s", timer.Status)
	}

	timer.Resume()
	if timer.Status != timerstatus.Statuses.Running.Code() || timer.PausedAt != nil {
		t.Errorf("Resume() status = %s", timer.Status)
	}

	timer.Complete()
	if timer.Status != timerstatus.Statuses.Completed.Code() || timer.FinishedAt == nil {
		t.Errorf("Complete() status = %s", timer.Status)
	}
	if !timer.IsTerminal() {
		t.Error("completed timer should be terminal")
	}
}

func TestTimerTerminalStatuses(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Timer)
		want  string
	}{
		{"cancel", (*Timer).Cancel, timerstatus.Statuses.Cancelled.Code()},
		{"expire", (*Timer).Expire, timerstatus.Statuses.Expired.Code()},
		{"complete", (*Timer).Complete, timerstatus.Statuses.Completed.Code()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := newTestTimer()
			timer.Start()
			tt.apply(timer)
			if timer.Status != tt.want {
				t.Errorf("status = %s, want %s", timer.Status, tt.want)
			}
			if !timer.IsTerminal() {
				t.Error("should be terminal")
			}
		})
	}
}

// Transitions are recorded, not guarded: a jump from created straight to
// completed is accepted.
func TestTimerUnguardedJump(t *testing.T) {
	timer := newTestTimer()
	timer.Complete()
	if timer.Status != timerstatus.Statuses.Completed.Code() {
		t.Errorf("status = %s", timer.Status)
	}
}

func TestFakeTimerRepoContract(t *testing.T) {
	repo := NewFakeTimerRepo()
	ctx := context.Background()

	stationID := uuid.New()
	bound := newTestTimer()
	bound.StationID = &stationID
	free := newTestTimer()
	free.Start()

	for _, timer := range []*Timer{bound, free} {
		if err := repo.Create(ctx, timer); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	byStation, err := repo.ListByStation(ctx, stationID)
	if err != nil || len(byStation) != 1 || byStation[0].ID != bound.ID {
		t.Errorf("ListByStation() = %d timers", len(byStation))
	}

	running, err := repo.ListByStatus(ctx, timerstatus.Statuses.Running.Code())
	if err != nil || len(running) != 1 || running[0].ID != free.ID {
		t.Errorf("ListByStatus() = %d timers", len(running))
	}

	if err := repo.Delete(ctx, bound.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, bound.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() after Delete() kind = %v, want NotFound", fail.KindOf(err))
	}
}
