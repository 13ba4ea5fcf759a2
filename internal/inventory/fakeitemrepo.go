package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeItemRepo is an in-memory implementation of ItemRepo for testing and
// local development.
type FakeItemRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Item
	order []uuid.UUID
}

func NewFakeItemRepo() *FakeItemRepo {
	return &FakeItemRepo{
		items: make(map[uuid.UUID]*Item),
		order: make([]uuid.UUID, 0),
	}
}

func (r *FakeItemRepo) Create(ctx context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fail.New(fail.Conflict, "inventory item already exists")
	}

	itemCopy := *item
	r.items[item.ID] = &itemCopy
	r.order = append(r.order, item.ID)
	return nil
}

func (r *FakeItemRepo) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "inventory item not found")
	}

	itemCopy := *item
	return &itemCopy, nil
}

func (r *FakeItemRepo) List(ctx context.Context) ([]*Item, error) {
	return r.listWhere(func(*Item) bool { return true })
}

func (r *FakeItemRepo) ListByCategory(ctx context.Context, category string) ([]*Item, error) {
	return r.listWhere(func(item *Item) bool {
		return item.Category == category
	})
}

func (r *FakeItemRepo) ListLowStock(ctx context.Context) ([]*Item, error) {
	return r.listWhere(func(item *Item) bool {
		return item.IsLowStock()
	})
}

func (r *FakeItemRepo) ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*Item, error) {
	return r.listWhere(func(item *Item) bool {
		return item.ExpiresBefore(cutoff)
	})
}

func (r *FakeItemRepo) Save(ctx context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return fail.New(fail.NotFound, "inventory item not found")
	}

	itemCopy := *item
	r.items[item.ID] = &itemCopy
	return nil
}

func (r *FakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return fail.New(fail.NotFound, "inventory item not found")
	}

	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeItemRepo) listWhere(match func(*Item) bool) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Item, 0)
	for _, id := range r.order {
		item := r.items[id]
		if match(item) {
			itemCopy := *item
			result = append(result, &itemCopy)
		}
	}
	return result, nil
}
