package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ItemRepo defines data access for inventory items.
type ItemRepo interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	ListByCategory(ctx context.Context, category string) ([]*Item, error)
	ListLowStock(ctx context.Context) ([]*Item, error)
	ListExpiringBefore(ctx context.Context, cutoff time.Time) ([]*Item, error)
	Save(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}
