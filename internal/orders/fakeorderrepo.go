package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeOrderRepo provides an in-memory implementation of OrderRepo for
// development and tests. It enforces the same existence semantics as the
// MongoDB path: Conflict on duplicate create, NotFound on missing id.
type FakeOrderRepo struct {
	mu       sync.RWMutex
	orders   map[uuid.UUID]*Order
	sequence []uuid.UUID

	// PollInterval drives Watch; tests shorten it.
	PollInterval time.Duration
}

func NewFakeOrderRepo() *FakeOrderRepo {
	return &FakeOrderRepo{
		orders:       make(map[uuid.UUID]*Order),
		PollInterval: 2 * time.Second,
	}
}

func (r *FakeOrderRepo) Create(ctx context.Context, order *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return fail.Newf(fail.Conflict, "order %s already exists", order.ID)
	}

	orderCopy := *order
	r.orders[order.ID] = &orderCopy
	r.sequence = append(r.sequence, order.ID)
	return nil
}

func (r *FakeOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, fail.Newf(fail.NotFound, "order %s not found", id)
	}

	orderCopy := *order
	return &orderCopy, nil
}

func (r *FakeOrderRepo) List(ctx context.Context, filter OrderFilter) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Order, 0, len(r.orders))
	for _, id := range r.sequence {
		order, exists := r.orders[id]
		if !exists {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.StationID != nil && (order.StationID == nil || *order.StationID != *filter.StationID) {
			continue
		}
		orderCopy := *order
		result = append(result, &orderCopy)
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*Order{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (r *FakeOrderRepo) ListByStatus(ctx context.Context, status string) ([]*Order, error) {
	return r.List(ctx, OrderFilter{Status: &status})
}

func (r *FakeOrderRepo) ListByStation(ctx context.Context, stationID StationID) ([]*Order, error) {
	return r.List(ctx, OrderFilter{StationID: &stationID})
}

func (r *FakeOrderRepo) Save(ctx context.Context, order *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return fail.Newf(fail.NotFound, "order %s not found", order.ID)
	}

	orderCopy := *order
	r.orders[order.ID] = &orderCopy
	return nil
}

func (r *FakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[id]; !exists {
		return fail.Newf(fail.NotFound, "order %s not found", id)
	}

	delete(r.orders, id)
	for i, existing := range r.sequence {
		if existing == id {
			r.sequence = append(r.sequence[:i], r.sequence[i+1:]...)
			break
		}
	}
	return nil
}

// Watch polls the map on a fixed ticker and emits the open-order set. The
// MongoDB path uses change streams instead; the contract is the same.
func (r *FakeOrderRepo) Watch(ctx context.Context) (<-chan []*Order, error) {
	ch := make(chan []*Order, 1)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(r.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				open := r.openOrders()
				select {
				case ch <- open:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func (r *FakeOrderRepo) openOrders() []*Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Order, 0, len(r.orders))
	for _, order := range r.orders {
		if order.IsOpen() {
			orderCopy := *order
			result = append(result, &orderCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
