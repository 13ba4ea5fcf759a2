package tables

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeTableRepo is an in-memory implementation of TableRepo for testing and
// local development. Number uniqueness is enforced the same way the mongo
// path does with its unique index.
type FakeTableRepo struct {
	mu      sync.RWMutex
	tables  map[uuid.UUID]*Table
	numbers map[string]uuid.UUID
	order   []uuid.UUID
}

func NewFakeTableRepo() *FakeTableRepo {
	return &FakeTableRepo{
		tables:  make(map[uuid.UUID]*Table),
		numbers: make(map[string]uuid.UUID),
		order:   make([]uuid.UUID, 0),
	}
}

func (r *FakeTableRepo) Create(ctx context.Context, table *Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[table.ID]; exists {
		return fail.New(fail.Conflict, "table already exists")
	}
	if _, exists := r.numbers[table.Number]; exists {
		return fail.Newf(fail.Conflict, "table number %s already in use", table.Number)
	}

	tableCopy := *table
	r.tables[table.ID] = &tableCopy
	r.numbers[table.Number] = table.ID
	r.order = append(r.order, table.ID)
	return nil
}

func (r *FakeTableRepo) Get(ctx context.Context, id uuid.UUID) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table, exists := r.tables[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "table not found")
	}

	tableCopy := *table
	return &tableCopy, nil
}

func (r *FakeTableRepo) GetByNumber(ctx context.Context, number string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.numbers[number]
	if !exists {
		return nil, fail.New(fail.NotFound, "table not found")
	}

	tableCopy := *r.tables[id]
	return &tableCopy, nil
}

func (r *FakeTableRepo) List(ctx context.Context) ([]*Table, error) {
	return r.listWhere(func(*Table) bool { return true })
}

func (r *FakeTableRepo) ListByStatus(ctx context.Context, status string) ([]*Table, error) {
	return r.listWhere(func(table *Table) bool {
		return table.Status == status
	})
}

func (r *FakeTableRepo) ListBySection(ctx context.Context, section string) ([]*Table, error) {
	return r.listWhere(func(table *Table) bool {
		return table.Section == section
	})
}

func (r *FakeTableRepo) Save(ctx context.Context, table *Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.tables[table.ID]
	if !exists {
		return fail.New(fail.NotFound, "table not found")
	}

	if existing.Number != table.Number {
		if _, taken := r.numbers[table.Number]; taken {
			return fail.Newf(fail.Conflict, "table number %s already in use", table.Number)
		}
		delete(r.numbers, existing.Number)
		r.numbers[table.Number] = table.ID
	}

	tableCopy := *table
	r.tables[table.ID] = &tableCopy
	return nil
}

func (r *FakeTableRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, exists := r.tables[id]
	if !exists {
		return fail.New(fail.NotFound, "table not found")
	}

	delete(r.numbers, table.Number)
	delete(r.tables, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeTableRepo) listWhere(match func(*Table) bool) ([]*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Table, 0)
	for _, id := range r.order {
		table := r.tables[id]
		if match(table) {
			tableCopy := *table
			result = append(result, &tableCopy)
		}
	}
	return result, nil
}
