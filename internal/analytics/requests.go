package analytics

import (
	"time"

	"github.com/google/uuid"
)

// MetricCreateRequest is the payload for recording a kitchen metric.
type MetricCreateRequest struct {
	Name       string     `json:"name"`
	StationID  *uuid.UUID `json:"station_id"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
	Target     float64    `json:"target"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// OrderAnalyticsCreateRequest is the payload for storing a per-period order
// aggregate. Revenue comes in as major units.
type OrderAnalyticsCreateRequest struct {
	PeriodStart     time.Time `json:"period_start"`
	PeriodEnd       time.Time `json:"period_end"`
	TotalOrders     int       `json:"total_orders"`
	CompletedOrders int       `json:"completed_orders"`
	CancelledOrders int       `json:"cancelled_orders"`
	AvgPrepTimeSec  float64   `json:"avg_prep_time_sec"`
	Revenue         float64   `json:"revenue"`
}

// StaffAnalyticsCreateRequest is the payload for storing a per-period staff
// performance aggregate.
type StaffAnalyticsCreateRequest struct {
	UserID            uuid.UUID `json:"user_id"`
	PeriodStart       time.Time `json:"period_start"`
	PeriodEnd         time.Time `json:"period_end"`
	OrdersHandled     int       `json:"orders_handled"`
	AvgServiceTimeSec float64   `json:"avg_service_time_sec"`
	ErrorCount        int       `json:"error_count"`
}
