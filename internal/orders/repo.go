package orders

import (
	"context"

	"github.com/google/uuid"
)

type OrderFilter struct {
	Status    *string
	StationID *StationID
	Limit     int
	Offset    int
}

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*Order, error)
	ListByStatus(ctx context.Context, status string) ([]*Order, error)
	ListByStation(ctx context.Context, stationID StationID) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Watch emits the current open-order set whenever the backing store
	// reports a change. The channel closes when ctx is cancelled.
	Watch(ctx context.Context) (<-chan []*Order, error)
}
