package kitchen

import (
	"context"

	"github.com/google/uuid"
)

type StationRepo interface {
	Create(ctx context.Context, station *Station) error
	Get(ctx context.Context, id uuid.UUID) (*Station, error)
	List(ctx context.Context) ([]*Station, error)
	ListByType(ctx context.Context, stationType string) ([]*Station, error)
	Save(ctx context.Context, station *Station) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TimerRepo interface {
	Create(ctx context.Context, timer *Timer) error
	Get(ctx context.Context, id uuid.UUID) (*Timer, error)
	List(ctx context.Context) ([]*Timer, error)
	ListByStation(ctx context.Context, stationID StationID) ([]*Timer, error)
	ListByStatus(ctx context.Context, status string) ([]*Timer, error)
	Save(ctx context.Context, timer *Timer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
