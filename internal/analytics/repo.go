package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MetricRepo stores kitchen metrics.
type MetricRepo interface {
	Create(ctx context.Context, metric *KitchenMetric) error
	Get(ctx context.Context, id uuid.UUID) (*KitchenMetric, error)
	List(ctx context.Context) ([]*KitchenMetric, error)
	ListByStation(ctx context.Context, stationID uuid.UUID) ([]*KitchenMetric, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*KitchenMetric, error)
	Save(ctx context.Context, metric *KitchenMetric) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderAnalyticsRepo stores per-period order aggregates.
type OrderAnalyticsRepo interface {
	Create(ctx context.Context, stats *OrderAnalytics) error
	Get(ctx context.Context, id uuid.UUID) (*OrderAnalytics, error)
	List(ctx context.Context) ([]*OrderAnalytics, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*OrderAnalytics, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffAnalyticsRepo stores per-period staff performance aggregates.
type StaffAnalyticsRepo interface {
	Create(ctx context.Context, stats *StaffPerformanceAnalytics) error
	Get(ctx context.Context, id uuid.UUID) (*StaffPerformanceAnalytics, error)
	List(ctx context.Context) ([]*StaffPerformanceAnalytics, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*StaffPerformanceAnalytics, error)

	// ListByRole is declared for the application layer but not served: role
	// is not stored on performance records, so implementations return
	// fail.ErrUnsupported.
	ListByRole(ctx context.Context, role string) ([]*StaffPerformanceAnalytics, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
