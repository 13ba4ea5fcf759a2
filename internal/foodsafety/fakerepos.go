package foodsafety

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// In-memory implementations of the food safety repos for testing and local
// development.

type FakeTemperatureLogRepo struct {
	mu    sync.RWMutex
	logs  map[uuid.UUID]*TemperatureLog
	order []uuid.UUID

	// CreateErr, when set, makes every Create fail. Used to exercise the
	// best-effort violation path.
	CreateErr error
}

func NewFakeTemperatureLogRepo() *FakeTemperatureLogRepo {
	return &FakeTemperatureLogRepo{
		logs:  make(map[uuid.UUID]*TemperatureLog),
		order: make([]uuid.UUID, 0),
	}
}

func (r *FakeTemperatureLogRepo) Create(ctx context.Context, log *TemperatureLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, exists := r.logs[log.ID]; exists {
		return fail.New(fail.Conflict, "temperature log already exists")
	}

	logCopy := *log
	r.logs[log.ID] = &logCopy
	r.order = append(r.order, log.ID)
	return nil
}

func (r *FakeTemperatureLogRepo) Get(ctx context.Context, id uuid.UUID) (*TemperatureLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, exists := r.logs[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "temperature log not found")
	}

	logCopy := *log
	return &logCopy, nil
}

func (r *FakeTemperatureLogRepo) List(ctx context.Context) ([]*TemperatureLog, error) {
	return r.listWhere(func(*TemperatureLog) bool { return true })
}

func (r *FakeTemperatureLogRepo) ListByLocation(ctx context.Context, location string) ([]*TemperatureLog, error) {
	return r.listWhere(func(log *TemperatureLog) bool {
		return log.Location == location
	})
}

func (r *FakeTemperatureLogRepo) ListSince(ctx context.Context, since time.Time) ([]*TemperatureLog, error) {
	return r.listWhere(func(log *TemperatureLog) bool {
		return !log.RecordedAt.Before(since)
	})
}

func (r *FakeTemperatureLogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.logs[id]; !exists {
		return fail.New(fail.NotFound, "temperature log not found")
	}

	delete(r.logs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeTemperatureLogRepo) listWhere(match func(*TemperatureLog) bool) ([]*TemperatureLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*TemperatureLog, 0)
	for _, id := range r.order {
		log := r.logs[id]
		if match(log) {
			logCopy := *log
			result = append(result, &logCopy)
		}
	}
	return result, nil
}

type FakeViolationRepo struct {
	mu         sync.RWMutex
	violations map[uuid.UUID]*Violation
	order      []uuid.UUID

	// CreateErr, when set, makes every Create fail. Used to exercise the
	// best-effort violation path.
	CreateErr error
}

func NewFakeViolationRepo() *FakeViolationRepo {
	return &FakeViolationRepo{
		violations: make(map[uuid.UUID]*Violation),
		order:      make([]uuid.UUID, 0),
	}
}

func (r *FakeViolationRepo) Create(ctx context.Context, violation *Violation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	if _, exists := r.violations[violation.ID]; exists {
		return fail.New(fail.Conflict, "violation already exists")
	}

	violationCopy := *violation
	r.violations[violation.ID] = &violationCopy
	r.order = append(r.order, violation.ID)
	return nil
}

func (r *FakeViolationRepo) Get(ctx context.Context, id uuid.UUID) (*Violation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	violation, exists := r.violations[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "violation not found")
	}

	violationCopy := *violation
	return &violationCopy, nil
}

func (r *FakeViolationRepo) List(ctx context.Context) ([]*Violation, error) {
	return r.listWhere(func(*Violation) bool { return true })
}

func (r *FakeViolationRepo) ListOpen(ctx context.Context) ([]*Violation, error) {
	return r.listWhere(func(violation *Violation) bool {
		return !violation.Resolved
	})
}

func (r *FakeViolationRepo) ListBySeverity(ctx context.Context, sev string) ([]*Violation, error) {
	return r.listWhere(func(violation *Violation) bool {
		return violation.Severity == sev
	})
}

func (r *FakeViolationRepo) Save(ctx context.Context, violation *Violation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.violations[violation.ID]; !exists {
		return fail.New(fail.NotFound, "violation not found")
	}

	violationCopy := *violation
	r.violations[violation.ID] = &violationCopy
	return nil
}

func (r *FakeViolationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.violations[id]; !exists {
		return fail.New(fail.NotFound, "violation not found")
	}

	delete(r.violations, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeViolationRepo) listWhere(match func(*Violation) bool) ([]*Violation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Violation, 0)
	for _, id := range r.order {
		violation := r.violations[id]
		if match(violation) {
			violationCopy := *violation
			result = append(result, &violationCopy)
		}
	}
	return result, nil
}

type FakeControlPointRepo struct {
	mu     sync.RWMutex
	points map[uuid.UUID]*ControlPoint
	order  []uuid.UUID
}

func NewFakeControlPointRepo() *FakeControlPointRepo {
	return &FakeControlPointRepo{
		points: make(map[uuid.UUID]*ControlPoint),
		order:  make([]uuid.UUID, 0),
	}
}

func (r *FakeControlPointRepo) Create(ctx context.Context, point *ControlPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.points[point.ID]; exists {
		return fail.New(fail.Conflict, "control point already exists")
	}

	pointCopy := *point
	r.points[point.ID] = &pointCopy
	r.order = append(r.order, point.ID)
	return nil
}

func (r *FakeControlPointRepo) Get(ctx context.Context, id uuid.UUID) (*ControlPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	point, exists := r.points[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "control point not found")
	}

	pointCopy := *point
	return &pointCopy, nil
}

func (r *FakeControlPointRepo) List(ctx context.Context) ([]*ControlPoint, error) {
	return r.listWhere(func(*ControlPoint) bool { return true })
}

func (r *FakeControlPointRepo) ListDue(ctx context.Context, now time.Time) ([]*ControlPoint, error) {
	return r.listWhere(func(point *ControlPoint) bool {
		return point.CheckDue(now)
	})
}

func (r *FakeControlPointRepo) Save(ctx context.Context, point *ControlPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.points[point.ID]; !exists {
		return fail.New(fail.NotFound, "control point not found")
	}

	pointCopy := *point
	r.points[point.ID] = &pointCopy
	return nil
}

func (r *FakeControlPointRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.points[id]; !exists {
		return fail.New(fail.NotFound, "control point not found")
	}

	delete(r.points, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeControlPointRepo) listWhere(match func(*ControlPoint) bool) ([]*ControlPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*ControlPoint, 0)
	for _, id := range r.order {
		point := r.points[id]
		if match(point) {
			pointCopy := *point
			result = append(result, &pointCopy)
		}
	}
	return result, nil
}

type FakeAuditRepo struct {
	mu     sync.RWMutex
	audits map[uuid.UUID]*Audit
	order  []uuid.UUID
}

func NewFakeAuditRepo() *FakeAuditRepo {
	return &FakeAuditRepo{
		audits: make(map[uuid.UUID]*Audit),
		order:  make([]uuid.UUID, 0),
	}
}

func (r *FakeAuditRepo) Create(ctx context.Context, audit *Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.audits[audit.ID]; exists {
		return fail.New(fail.Conflict, "audit already exists")
	}

	auditCopy := *audit
	r.audits[audit.ID] = &auditCopy
	r.order = append(r.order, audit.ID)
	return nil
}

func (r *FakeAuditRepo) Get(ctx context.Context, id uuid.UUID) (*Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	audit, exists := r.audits[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "audit not found")
	}

	auditCopy := *audit
	return &auditCopy, nil
}

func (r *FakeAuditRepo) List(ctx context.Context) ([]*Audit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Audit, 0)
	for _, id := range r.order {
		auditCopy := *r.audits[id]
		result = append(result, &auditCopy)
	}
	return result, nil
}

func (r *FakeAuditRepo) Save(ctx context.Context, audit *Audit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.audits[audit.ID]; !exists {
		return fail.New(fail.NotFound, "audit not found")
	}

	auditCopy := *audit
	r.audits[audit.ID] = &auditCopy
	return nil
}

func (r *FakeAuditRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.audits[id]; !exists {
		return fail.New(fail.NotFound, "audit not found")
	}

	delete(r.audits, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
