package menu

import (
	"context"

	"github.com/google/uuid"
)

// RecipeRepo defines data access for recipes.
type RecipeRepo interface {
	Create(ctx context.Context, recipe *Recipe) error
	Get(ctx context.Context, id uuid.UUID) (*Recipe, error)
	List(ctx context.Context) ([]*Recipe, error)
	ListByCategory(ctx context.Context, category string) ([]*Recipe, error)
	ListByTag(ctx context.Context, tag string) ([]*Recipe, error)
	Save(ctx context.Context, recipe *Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
}
