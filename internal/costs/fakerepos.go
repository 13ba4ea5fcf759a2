package costs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// In-memory implementations of the cost repos for testing and local
// development.

type FakeCostRepo struct {
	mu    sync.RWMutex
	costs map[uuid.UUID]*Cost
	order []uuid.UUID
}

func NewFakeCostRepo() *FakeCostRepo {
	return &FakeCostRepo{
		costs: make(map[uuid.UUID]*Cost),
		order: make([]uuid.UUID, 0),
	}
}

func (r *FakeCostRepo) Create(ctx context.Context, cost *Cost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.costs[cost.ID]; exists {
		return fail.New(fail.Conflict, "cost already exists")
	}

	costCopy := *cost
	r.costs[cost.ID] = &costCopy
	r.order = append(r.order, cost.ID)
	return nil
}

func (r *FakeCostRepo) Get(ctx context.Context, id uuid.UUID) (*Cost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cost, exists := r.costs[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "cost not found")
	}

	costCopy := *cost
	return &costCopy, nil
}

func (r *FakeCostRepo) List(ctx context.Context) ([]*Cost, error) {
	return r.listWhere(func(*Cost) bool { return true })
}

func (r *FakeCostRepo) ListByCenter(ctx context.Context, centerID uuid.UUID) ([]*Cost, error) {
	return r.listWhere(func(cost *Cost) bool {
		return cost.CostCenterID != nil && *cost.CostCenterID == centerID
	})
}

func (r *FakeCostRepo) ListByCategory(ctx context.Context, category string) ([]*Cost, error) {
	return r.listWhere(func(cost *Cost) bool {
		return cost.Category == category
	})
}

func (r *FakeCostRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*Cost, error) {
	return r.listWhere(func(cost *Cost) bool {
		return !cost.IncurredAt.Before(from) && cost.IncurredAt.Before(to)
	})
}

func (r *FakeCostRepo) Save(ctx context.Context, cost *Cost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.costs[cost.ID]; !exists {
		return fail.New(fail.NotFound, "cost not found")
	}

	costCopy := *cost
	r.costs[cost.ID] = &costCopy
	return nil
}

func (r *FakeCostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.costs[id]; !exists {
		return fail.New(fail.NotFound, "cost not found")
	}

	delete(r.costs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeCostRepo) listWhere(match func(*Cost) bool) ([]*Cost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Cost, 0)
	for _, id := range r.order {
		cost := r.costs[id]
		if match(cost) {
			costCopy := *cost
			result = append(result, &costCopy)
		}
	}
	return result, nil
}

type FakeCostCenterRepo struct {
	mu      sync.RWMutex
	centers map[uuid.UUID]*CostCenter
	order   []uuid.UUID
}

func NewFakeCostCenterRepo() *FakeCostCenterRepo {
	return &FakeCostCenterRepo{
		centers: make(map[uuid.UUID]*CostCenter),
		order:   make([]uuid.UUID, 0),
	}
}

func (r *FakeCostCenterRepo) Create(ctx context.Context, center *CostCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.centers[center.ID]; exists {
		return fail.New(fail.Conflict, "cost center already exists")
	}

	centerCopy := *center
	r.centers[center.ID] = &centerCopy
	r.order = append(r.order, center.ID)
	return nil
}

func (r *FakeCostCenterRepo) Get(ctx context.Context, id uuid.UUID) (*CostCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	center, exists := r.centers[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "cost center not found")
	}

	centerCopy := *center
	return &centerCopy, nil
}

func (r *FakeCostCenterRepo) List(ctx context.Context) ([]*CostCenter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*CostCenter, 0)
	for _, id := range r.order {
		centerCopy := *r.centers[id]
		result = append(result, &centerCopy)
	}
	return result, nil
}

func (r *FakeCostCenterRepo) Save(ctx context.Context, center *CostCenter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.centers[center.ID]; !exists {
		return fail.New(fail.NotFound, "cost center not found")
	}

	centerCopy := *center
	r.centers[center.ID] = &centerCopy
	return nil
}

func (r *FakeCostCenterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.centers[id]; !exists {
		return fail.New(fail.NotFound, "cost center not found")
	}

	delete(r.centers, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type FakeRecipeCostRepo struct {
	mu       sync.RWMutex
	costs    map[uuid.UUID]*RecipeCost
	byRecipe map[uuid.UUID]uuid.UUID
	order    []uuid.UUID
}

func NewFakeRecipeCostRepo() *FakeRecipeCostRepo {
	return &FakeRecipeCostRepo{
		costs:    make(map[uuid.UUID]*RecipeCost),
		byRecipe: make(map[uuid.UUID]uuid.UUID),
		order:    make([]uuid.UUID, 0),
	}
}

func (r *FakeRecipeCostRepo) Create(ctx context.Context, recipeCost *RecipeCost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.costs[recipeCost.ID]; exists {
		return fail.New(fail.Conflict, "recipe cost already exists")
	}
	if _, exists := r.byRecipe[recipeCost.RecipeID]; exists {
		return fail.New(fail.Conflict, "recipe already has a cost breakdown")
	}

	costCopy := *recipeCost
	r.costs[recipeCost.ID] = &costCopy
	r.byRecipe[recipeCost.RecipeID] = recipeCost.ID
	r.order = append(r.order, recipeCost.ID)
	return nil
}

func (r *FakeRecipeCostRepo) Get(ctx context.Context, id uuid.UUID) (*RecipeCost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipeCost, exists := r.costs[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "recipe cost not found")
	}

	costCopy := *recipeCost
	return &costCopy, nil
}

func (r *FakeRecipeCostRepo) GetByRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeCost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byRecipe[recipeID]
	if !exists {
		return nil, fail.New(fail.NotFound, "recipe cost not found")
	}

	costCopy := *r.costs[id]
	return &costCopy, nil
}

func (r *FakeRecipeCostRepo) List(ctx context.Context) ([]*RecipeCost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*RecipeCost, 0)
	for _, id := range r.order {
		costCopy := *r.costs[id]
		result = append(result, &costCopy)
	}
	return result, nil
}

func (r *FakeRecipeCostRepo) Save(ctx context.Context, recipeCost *RecipeCost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.costs[recipeCost.ID]; !exists {
		return fail.New(fail.NotFound, "recipe cost not found")
	}

	costCopy := *recipeCost
	r.costs[recipeCost.ID] = &costCopy
	return nil
}

func (r *FakeRecipeCostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recipeCost, exists := r.costs[id]
	if !exists {
		return fail.New(fail.NotFound, "recipe cost not found")
	}

	delete(r.byRecipe, recipeCost.RecipeID)
	delete(r.costs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
