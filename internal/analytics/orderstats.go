package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/money"
)

type OrderAnalyticsID = uuid.UUID

// OrderAnalytics is an aggregated slice of order activity for one period.
// Records are written by the reporting pipeline, one per period, and read
// back to build performance reports.
type OrderAnalytics struct {
	ID              OrderAnalyticsID `json:"id" bson:"_id"`
	PeriodStart     time.Time        `json:"period_start" bson:"period_start"`
	PeriodEnd       time.Time        `json:"period_end" bson:"period_end"`
	TotalOrders     int              `json:"total_orders" bson:"total_orders"`
	CompletedOrders int              `json:"completed_orders" bson:"completed_orders"`
	CancelledOrders int              `json:"cancelled_orders" bson:"cancelled_orders"`
	AvgPrepTimeSec  float64          `json:"avg_prep_time_sec" bson:"avg_prep_time_sec"`
	Revenue         money.Money      `json:"revenue" bson:"revenue"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" bson:"updated_at"`
}

func NewOrderAnalytics() *OrderAnalytics {
	return &OrderAnalytics{
		ID: uuid.New(),
	}
}

func (o *OrderAnalytics) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
}

func (o *OrderAnalytics) GetID() uuid.UUID {
	return o.ID
}

func (o *OrderAnalytics) SetID(id uuid.UUID) {
	o.ID = id
}

func (o *OrderAnalytics) ResourceType() string {
	return "orderanalytics"
}

// CompletionRatePercent is completed over total, as a percentage. Periods
// with no orders read as 0.
func (o *OrderAnalytics) CompletionRatePercent() float64 {
	if o.TotalOrders == 0 {
		return 0.0
	}
	return round2(float64(o.CompletedOrders) / float64(o.TotalOrders) * 100)
}

func (o *OrderAnalytics) BeforeCreate() {
	o.EnsureID()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
}

func (o *OrderAnalytics) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}
