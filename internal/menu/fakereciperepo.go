package menu

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeRecipeRepo is an in-memory implementation of RecipeRepo for testing
// and local development.
type FakeRecipeRepo struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]*Recipe
	order   []uuid.UUID
}

func NewFakeRecipeRepo() *FakeRecipeRepo {
	return &FakeRecipeRepo{
		recipes: make(map[uuid.UUID]*Recipe),
		order:   make([]uuid.UUID, 0),
	}
}

func (r *FakeRecipeRepo) Create(ctx context.Context, recipe *Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.recipes[recipe.ID]; exists {
		return fail.New(fail.Conflict, "recipe already exists")
	}

	recipeCopy := *recipe
	r.recipes[recipe.ID] = &recipeCopy
	r.order = append(r.order, recipe.ID)
	return nil
}

func (r *FakeRecipeRepo) Get(ctx context.Context, id uuid.UUID) (*Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, exists := r.recipes[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "recipe not found")
	}

	recipeCopy := *recipe
	return &recipeCopy, nil
}

func (r *FakeRecipeRepo) List(ctx context.Context) ([]*Recipe, error) {
	return r.listWhere(func(*Recipe) bool { return true })
}

func (r *FakeRecipeRepo) ListByCategory(ctx context.Context, category string) ([]*Recipe, error) {
	return r.listWhere(func(recipe *Recipe) bool {
		return recipe.Category == category
	})
}

func (r *FakeRecipeRepo) ListByTag(ctx context.Context, tag string) ([]*Recipe, error) {
	return r.listWhere(func(recipe *Recipe) bool {
		return recipe.HasTag(tag)
	})
}

func (r *FakeRecipeRepo) Save(ctx context.Context, recipe *Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.recipes[recipe.ID]; !exists {
		return fail.New(fail.NotFound, "recipe not found")
	}

	recipeCopy := *recipe
	r.recipes[recipe.ID] = &recipeCopy
	return nil
}

func (r *FakeRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.recipes[id]; !exists {
		return fail.New(fail.NotFound, "recipe not found")
	}

	delete(r.recipes, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeRecipeRepo) listWhere(match func(*Recipe) bool) ([]*Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Recipe, 0)
	for _, id := range r.order {
		recipe := r.recipes[id]
		if match(recipe) {
			recipeCopy := *recipe
			result = append(result, &recipeCopy)
		}
	}
	return result, nil
}
