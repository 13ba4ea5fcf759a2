package kitchen

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeTimerRepo provides an in-memory implementation of TimerRepo for
// development and tests.
type FakeTimerRepo struct {
	mu       sync.RWMutex
	timers   map[uuid.UUID]*Timer
	sequence []uuid.UUID
}

func NewFakeTimerRepo() *FakeTimerRepo {
	return &FakeTimerRepo{
		timers: make(map[uuid.UUID]*Timer),
	}
}

func (r *FakeTimerRepo) Create(ctx context.Context, timer *Timer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.timers[timer.ID]; exists {
		return fail.Newf(fail.Conflict, "timer %s already exists", timer.ID)
	}

	timerCopy := *timer
	r.timers[timer.ID] = &timerCopy
	r.sequence = append(r.sequence, timer.ID)
	return nil
}

func (r *FakeTimerRepo) Get(ctx context.Context, id uuid.UUID) (*Timer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	timer, exists := r.timers[id]
	if !exists {
		return nil, fail.Newf(fail.NotFound, "timer %s not found", id)
	}

	timerCopy := *timer
	return &timerCopy, nil
}

func (r *FakeTimerRepo) List(ctx context.Context) ([]*Timer, error) {
	return r.listWhere(func(*Timer) bool { return true })
}

func (r *FakeTimerRepo) ListByStation(ctx context.Context, stationID StationID) ([]*Timer, error) {
	return r.listWhere(func(t *Timer) bool {
		return t.StationID != nil && *t.StationID == stationID
	})
}

func (r *FakeTimerRepo) ListByStatus(ctx context.Context, status string) ([]*Timer, error) {
	return r.listWhere(func(t *Timer) bool { return t.Status == status })
}

func (r *FakeTimerRepo) listWhere(keep func(*Timer) bool) ([]*Timer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Timer, 0, len(r.timers))
	for _, id := range r.sequence {
		timer, exists := r.timers[id]
		if !exists || !keep(timer) {
			continue
		}
		timerCopy := *timer
		result = append(result, &timerCopy)
	}
	return result, nil
}

func (r *FakeTimerRepo) Save(ctx context.Context, timer *Timer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.timers[timer.ID]; !exists {
		return fail.Newf(fail.NotFound, "timer %s not found", timer.ID)
	}

	timerCopy := *timer
	r.timers[timer.ID] = &timerCopy
	return nil
}

func (r *FakeTimerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.timers[id]; !exists {
		return fail.Newf(fail.NotFound, "timer %s not found", id)
	}

	delete(r.timers, id)
	return nil
}
