package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

// PerformanceReport is the kitchen-wide picture for a reporting window,
// composed from the stored per-period order aggregates.
type PerformanceReport struct {
	PeriodStart           time.Time   `json:"period_start"`
	PeriodEnd             time.Time   `json:"period_end"`
	TotalOrders           int         `json:"total_orders"`
	CompletedOrders       int         `json:"completed_orders"`
	CancelledOrders       int         `json:"cancelled_orders"`
	CompletionRatePercent float64     `json:"completion_rate_percent"`
	AvgPrepTimeSec        float64     `json:"avg_prep_time_sec"`
	Revenue               money.Money `json:"revenue"`
	TableTurnoverRate     float64     `json:"table_turnover_rate"`
	Trend                 string      `json:"trend"`
	Periods               int         `json:"periods"`
	GeneratedAt           time.Time   `json:"generated_at"`
}

// StaffReport is one staff member's performance across all stored periods.
type StaffReport struct {
	UserID            uuid.UUID `json:"user_id"`
	OrdersHandled     int       `json:"orders_handled"`
	AvgServiceTimeSec float64   `json:"avg_service_time_sec"`
	ErrorRatePercent  float64   `json:"error_rate_percent"`
	ServiceTimeTrend  string    `json:"service_time_trend"`
	Periods           int       `json:"periods"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// Reporter builds performance reports from stored aggregates.
type Reporter struct {
	orders OrderAnalyticsRepo
	staff  StaffAnalyticsRepo
}

func NewReporter(orders OrderAnalyticsRepo, staff StaffAnalyticsRepo) *Reporter {
	return &Reporter{
		orders: orders,
		staff:  staff,
	}
}

// KitchenReport aggregates every order period inside the window. The trend
// follows completion rate over time; turnover counts completed orders as
// parties served.
func (r *Reporter) KitchenReport(ctx context.Context, from, to time.Time, tableCount int) (*PerformanceReport, error) {
	periods, err := r.orders.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].PeriodStart.Before(periods[j].PeriodStart)
	})

	report := &PerformanceReport{
		PeriodStart: from,
		PeriodEnd:   to,
		Revenue:     money.FromCents(0),
		Trend:       TrendFlat,
		Periods:     len(periods),
		GeneratedAt: time.Now(),
	}

	completionRates := make([]float64, 0, len(periods))
	var weightedPrep float64
	for _, p := range periods {
		report.TotalOrders += p.TotalOrders
		report.CompletedOrders += p.CompletedOrders
		report.CancelledOrders += p.CancelledOrders
		report.Revenue = report.Revenue.Add(p.Revenue)
		weightedPrep += p.AvgPrepTimeSec * float64(p.TotalOrders)
		completionRates = append(completionRates, p.CompletionRatePercent())
	}

	if report.TotalOrders > 0 {
		report.CompletionRatePercent = round2(float64(report.CompletedOrders) / float64(report.TotalOrders) * 100)
		report.AvgPrepTimeSec = round2(weightedPrep / float64(report.TotalOrders))
	}
	report.TableTurnoverRate = TurnoverRate(report.CompletedOrders, tableCount)
	report.Trend = Trend(completionRates)

	return report, nil
}

// StaffReport aggregates every stored period for one staff member. A user
// with no records is NotFound.
func (r *Reporter) StaffReport(ctx context.Context, userID uuid.UUID) (*StaffReport, error) {
	periods, err := r.staff.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, fail.New(fail.NotFound, "no performance records for user")
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].PeriodStart.Before(periods[j].PeriodStart)
	})

	report := &StaffReport{
		UserID:           userID,
		ServiceTimeTrend: TrendFlat,
		Periods:          len(periods),
		GeneratedAt:      time.Now(),
	}

	serviceTimes := make([]float64, 0, len(periods))
	var weightedService float64
	var errorCount int
	for _, p := range periods {
		report.OrdersHandled += p.OrdersHandled
		errorCount += p.ErrorCount
		weightedService += p.AvgServiceTimeSec * float64(p.OrdersHandled)
		serviceTimes = append(serviceTimes, p.AvgServiceTimeSec)
	}

	if report.OrdersHandled > 0 {
		report.AvgServiceTimeSec = round2(weightedService / float64(report.OrdersHandled))
		report.ErrorRatePercent = round2(float64(errorCount) / float64(report.OrdersHandled) * 100)
	}
	report.ServiceTimeTrend = Trend(serviceTimes)

	return report, nil
}
