package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// In-memory implementations of the analytics repos for testing and local
// development.

type FakeMetricRepo struct {
	mu      sync.RWMutex
	metrics map[uuid.UUID]*KitchenMetric
	order   []uuid.UUID
}

func NewFakeMetricRepo() *FakeMetricRepo {
	return &FakeMetricRepo{
		metrics: make(map[uuid.UUID]*KitchenMetric),
		order:   make([]uuid.UUID, 0),
	}
}

func (r *FakeMetricRepo) Create(ctx context.Context, metric *KitchenMetric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.metrics[metric.ID]; exists {
		return fail.New(fail.Conflict, "metric already exists")
	}

	metricCopy := *metric
	r.metrics[metric.ID] = &metricCopy
	r.order = append(r.order, metric.ID)
	return nil
}

func (r *FakeMetricRepo) Get(ctx context.Context, id uuid.UUID) (*KitchenMetric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metric, exists := r.metrics[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "metric not found")
	}

	metricCopy := *metric
	return &metricCopy, nil
}

func (r *FakeMetricRepo) List(ctx context.Context) ([]*KitchenMetric, error) {
	return r.listWhere(func(*KitchenMetric) bool { return true })
}

func (r *FakeMetricRepo) ListByStation(ctx context.Context, stationID uuid.UUID) ([]*KitchenMetric, error) {
	return r.listWhere(func(metric *KitchenMetric) bool {
		return metric.StationID != nil && *metric.StationID == stationID
	})
}

func (r *FakeMetricRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*KitchenMetric, error) {
	return r.listWhere(func(metric *KitchenMetric) bool {
		return !metric.RecordedAt.Before(from) && metric.RecordedAt.Before(to)
	})
}

func (r *FakeMetricRepo) Save(ctx context.Context, metric *KitchenMetric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.metrics[metric.ID]; !exists {
		return fail.New(fail.NotFound, "metric not found")
	}

	metricCopy := *metric
	r.metrics[metric.ID] = &metricCopy
	return nil
}

func (r *FakeMetricRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.metrics[id]; !exists {
		return fail.New(fail.NotFound, "metric not found")
	}

	delete(r.metrics, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeMetricRepo) listWhere(match func(*KitchenMetric) bool) ([]*KitchenMetric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*KitchenMetric, 0)
	for _, id := range r.order {
		metric := r.metrics[id]
		if match(metric) {
			metricCopy := *metric
			result = append(result, &metricCopy)
		}
	}
	return result, nil
}

type FakeOrderAnalyticsRepo struct {
	mu    sync.RWMutex
	stats map[uuid.UUID]*OrderAnalytics
	order []uuid.UUID
}

func NewFakeOrderAnalyticsRepo() *FakeOrderAnalyticsRepo {
	return &FakeOrderAnalyticsRepo{
		stats: make(map[uuid.UUID]*OrderAnalytics),
		order: make([]uuid.UUID, 0),
	}
}

func (r *FakeOrderAnalyticsRepo) Create(ctx context.Context, stats *OrderAnalytics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stats[stats.ID]; exists {
		return fail.New(fail.Conflict, "order analytics record already exists")
	}

	statsCopy := *stats
	r.stats[stats.ID] = &statsCopy
	r.order = append(r.order, stats.ID)
	return nil
}

func (r *FakeOrderAnalyticsRepo) Get(ctx context.Context, id uuid.UUID) (*OrderAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, exists := r.stats[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "order analytics record not found")
	}

	statsCopy := *stats
	return &statsCopy, nil
}

func (r *FakeOrderAnalyticsRepo) List(ctx context.Context) ([]*OrderAnalytics, error) {
	return r.listWhere(func(*OrderAnalytics) bool { return true })
}

func (r *FakeOrderAnalyticsRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*OrderAnalytics, error) {
	return r.listWhere(func(stats *OrderAnalytics) bool {
		return !stats.PeriodStart.Before(from) && stats.PeriodStart.Before(to)
	})
}

func (r *FakeOrderAnalyticsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stats[id]; !exists {
		return fail.New(fail.NotFound, "order analytics record not found")
	}

	delete(r.stats, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeOrderAnalyticsRepo) listWhere(match func(*OrderAnalytics) bool) ([]*OrderAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*OrderAnalytics, 0)
	for _, id := range r.order {
		stats := r.stats[id]
		if match(stats) {
			statsCopy := *stats
			result = append(result, &statsCopy)
		}
	}
	return result, nil
}

type FakeStaffAnalyticsRepo struct {
	mu    sync.RWMutex
	stats map[uuid.UUID]*StaffPerformanceAnalytics
	order []uuid.UUID
}

func NewFakeStaffAnalyticsRepo() *FakeStaffAnalyticsRepo {
	return &FakeStaffAnalyticsRepo{
		stats: make(map[uuid.UUID]*StaffPerformanceAnalytics),
		order: make([]uuid.UUID, 0),
	}
}

func (r *FakeStaffAnalyticsRepo) Create(ctx context.Context, stats *StaffPerformanceAnalytics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stats[stats.ID]; exists {
		return fail.New(fail.Conflict, "staff analytics record already exists")
	}

	statsCopy := *stats
	r.stats[stats.ID] = &statsCopy
	r.order = append(r.order, stats.ID)
	return nil
}

func (r *FakeStaffAnalyticsRepo) Get(ctx context.Context, id uuid.UUID) (*StaffPerformanceAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, exists := r.stats[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "staff analytics record not found")
	}

	statsCopy := *stats
	return &statsCopy, nil
}

func (r *FakeStaffAnalyticsRepo) List(ctx context.Context) ([]*StaffPerformanceAnalytics, error) {
	return r.listWhere(func(*StaffPerformanceAnalytics) bool { return true })
}

func (r *FakeStaffAnalyticsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*StaffPerformanceAnalytics, error) {
	return r.listWhere(func(stats *StaffPerformanceAnalytics) bool {
		return stats.UserID == userID
	})
}

func (r *FakeStaffAnalyticsRepo) ListByRole(ctx context.Context, role string) ([]*StaffPerformanceAnalytics, error) {
	return nil, fail.ErrUnsupported
}

func (r *FakeStaffAnalyticsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stats[id]; !exists {
		return fail.New(fail.NotFound, "staff analytics record not found")
	}

	delete(r.stats, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeStaffAnalyticsRepo) listWhere(match func(*StaffPerformanceAnalytics) bool) ([]*StaffPerformanceAnalytics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*StaffPerformanceAnalytics, 0)
	for _, id := range r.order {
		stats := r.stats[id]
		if match(stats) {
			statsCopy := *stats
			result = append(result, &statsCopy)
		}
	}
	return result, nil
}
