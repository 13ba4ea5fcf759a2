package analytics

import (
	"time"

	"github.com/google/uuid"
)

type StaffAnalyticsID = uuid.UUID

// StaffPerformanceAnalytics is one staff member's aggregated service numbers
// for a period.
type StaffPerformanceAnalytics struct {
	ID                StaffAnalyticsID `json:"id" bson:"_id"`
	UserID            uuid.UUID        `json:"user_id" bson:"user_id"`
	PeriodStart       time.Time        `json:"period_start" bson:"period_start"`
	PeriodEnd         time.Time        `json:"period_end" bson:"period_end"`
	OrdersHandled     int              `json:"orders_handled" bson:"orders_handled"`
	AvgServiceTimeSec float64          `json:"avg_service_time_sec" bson:"avg_service_time_sec"`
	ErrorCount        int              `json:"error_count" bson:"error_count"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at" bson:"updated_at"`
}

func NewStaffPerformanceAnalytics() *StaffPerformanceAnalytics {
	return &StaffPerformanceAnalytics{
		ID: uuid.New(),
	}
}

func (s *StaffPerformanceAnalytics) EnsureID() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
}

func (s *StaffPerformanceAnalytics) GetID() uuid.UUID {
	return s.ID
}

func (s *StaffPerformanceAnalytics) SetID(id uuid.UUID) {
	s.ID = id
}

func (s *StaffPerformanceAnalytics) ResourceType() string {
	return "staffanalytics"
}

// ErrorRatePercent is errors over orders handled, as a percentage. Periods
// with no orders read as 0.
func (s *StaffPerformanceAnalytics) ErrorRatePercent() float64 {
	if s.OrdersHandled == 0 {
		return 0.0
	}
	return round2(float64(s.ErrorCount) / float64(s.OrdersHandled) * 100)
}

func (s *StaffPerformanceAnalytics) BeforeCreate() {
	s.EnsureID()
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
}

func (s *StaffPerformanceAnalytics) BeforeUpdate() {
	s.UpdatedAt = time.Now()
}
