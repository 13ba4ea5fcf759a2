package foodsafety

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TemperatureLogRepo defines data access for temperature readings.
type TemperatureLogRepo interface {
	Create(ctx context.Context, log *TemperatureLog) error
	Get(ctx context.Context, id uuid.UUID) (*TemperatureLog, error)
	List(ctx context.Context) ([]*TemperatureLog, error)
	ListByLocation(ctx context.Context, location string) ([]*TemperatureLog, error)
	ListSince(ctx context.Context, since time.Time) ([]*TemperatureLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ViolationRepo defines data access for violations.
type ViolationRepo interface {
	Create(ctx context.Context, violation *Violation) error
	Get(ctx context.Context, id uuid.UUID) (*Violation, error)
	List(ctx context.Context) ([]*Violation, error)
	ListOpen(ctx context.Context) ([]*Violation, error)
	ListBySeverity(ctx context.Context, sev string) ([]*Violation, error)
	Save(ctx context.Context, violation *Violation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ControlPointRepo defines data access for control points.
type ControlPointRepo interface {
	Create(ctx context.Context, point *ControlPoint) error
	Get(ctx context.Context, id uuid.UUID) (*ControlPoint, error)
	List(ctx context.Context) ([]*ControlPoint, error)
	ListDue(ctx context.Context, now time.Time) ([]*ControlPoint, error)
	Save(ctx context.Context, point *ControlPoint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditRepo defines data access for audits.
type AuditRepo interface {
	Create(ctx context.Context, audit *Audit) error
	Get(ctx context.Context, id uuid.UUID) (*Audit, error)
	List(ctx context.Context) ([]*Audit, error)
	Save(ctx context.Context, audit *Audit) error
	Delete(ctx context.Context, id uuid.UUID) error
}
