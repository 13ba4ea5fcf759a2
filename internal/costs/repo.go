package costs

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CostRepo defines data access for recorded costs.
type CostRepo interface {
	Create(ctx context.Context, cost *Cost) error
	Get(ctx context.Context, id uuid.UUID) (*Cost, error)
	List(ctx context.Context) ([]*Cost, error)
	ListByCenter(ctx context.Context, centerID uuid.UUID) ([]*Cost, error)
	ListByCategory(ctx context.Context, category string) ([]*Cost, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Cost, error)
	Save(ctx context.Context, cost *Cost) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CostCenterRepo defines data access for cost centers.
type CostCenterRepo interface {
	Create(ctx context.Context, center *CostCenter) error
	Get(ctx context.Context, id uuid.UUID) (*CostCenter, error)
	List(ctx context.Context) ([]*CostCenter, error)
	Save(ctx context.Context, center *CostCenter) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecipeCostRepo defines data access for recipe cost breakdowns.
type RecipeCostRepo interface {
	Create(ctx context.Context, recipeCost *RecipeCost) error
	Get(ctx context.Context, id uuid.UUID) (*RecipeCost, error)
	GetByRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeCost, error)
	List(ctx context.Context) ([]*RecipeCost, error)
	Save(ctx context.Context, recipeCost *RecipeCost) error
	Delete(ctx context.Context, id uuid.UUID) error
}
