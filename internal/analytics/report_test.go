package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

func newOrderPeriod(start time.Time, total, completed int, prepSec float64, revenueCents int64) *OrderAnalytics {
	stats := NewOrderAnalytics()
	stats.PeriodStart = start
	stats.PeriodEnd = start.Add(time.Hour)
	stats.TotalOrders = total
	stats.CompletedOrders = completed
	stats.CancelledOrders = total - completed
	stats.AvgPrepTimeSec = prepSec
	stats.Revenue = money.FromCents(revenueCents)
	stats.BeforeCreate()
	return stats
}

func TestReporterKitchenReport(t *testing.T) {
	ctx := context.Background()
	orders := NewFakeOrderAnalyticsRepo()
	reporter := NewReporter(orders, NewFakeStaffAnalyticsRepo())

	base := time.Date(2026, 8, 24, 17, 0, 0, 0, time.UTC)
	// Completion rate improves from 50% to 100% across the evening.
	early := newOrderPeriod(base, 40, 20, 600, 90000)
	late := newOrderPeriod(base.Add(2*time.Hour), 60, 60, 480, 150000)
	for _, p := range []*OrderAnalytics{early, late} {
		if err := orders.Create(ctx, p); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	report, err := reporter.KitchenReport(ctx, base, base.Add(6*time.Hour), 20)
	if err != nil {
		t.Fatalf("KitchenReport() error = %v", err)
	}

	if report.TotalOrders != 100 {
		t.Errorf("TotalOrders = %d, want 100", report.TotalOrders)
	}
	if report.CompletedOrders != 80 {
		t.Errorf("CompletedOrders = %d, want 80", report.CompletedOrders)
	}
	if report.CompletionRatePercent != 80.0 {
		t.Errorf("CompletionRatePercent = %v, want 80.0", report.CompletionRatePercent)
	}
	if report.Revenue.Cents != 240000 {
		t.Errorf("Revenue = %d, want 240000", report.Revenue.Cents)
	}
	// Weighted prep: (600*40 + 480*60) / 100 = 528.
	if report.AvgPrepTimeSec != 528.0 {
		t.Errorf("AvgPrepTimeSec = %v, want 528.0", report.AvgPrepTimeSec)
	}
	if report.TableTurnoverRate != 4.0 {
		t.Errorf("TableTurnoverRate = %v, want 4.0", report.TableTurnoverRate)
	}
	if report.Trend != TrendUp {
		t.Errorf("Trend = %q, want %q", report.Trend, TrendUp)
	}
	if report.Periods != 2 {
		t.Errorf("Periods = %d, want 2", report.Periods)
	}
}

func TestReporterKitchenReportEmptyWindow(t *testing.T) {
	reporter := NewReporter(NewFakeOrderAnalyticsRepo(), NewFakeStaffAnalyticsRepo())

	now := time.Now()
	report, err := reporter.KitchenReport(context.Background(), now.Add(-time.Hour), now, 20)
	if err != nil {
		t.Fatalf("KitchenReport() error = %v", err)
	}

	if report.TotalOrders != 0 {
		t.Errorf("TotalOrders = %d, want 0", report.TotalOrders)
	}
	if report.Trend != TrendFlat {
		t.Errorf("Trend = %q, want %q", report.Trend, TrendFlat)
	}
	if report.TableTurnoverRate != 0.0 {
		t.Errorf("TableTurnoverRate = %v, want 0.0", report.TableTurnoverRate)
	}
}

func TestReporterStaffReport(t *testing.T) {
	ctx := context.Background()
	staff := NewFakeStaffAnalyticsRepo()
	reporter := NewReporter(NewFakeOrderAnalyticsRepo(), staff)

	userID := uuid.New()
	base := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	// Service time trends down week over week.
	times := []float64{320, 300, 250, 240}
	for i, serviceTime := range times {
		stats := NewStaffPerformanceAnalytics()
		stats.UserID = userID
		stats.PeriodStart = base.AddDate(0, 0, i)
		stats.PeriodEnd = base.AddDate(0, 0, i+1)
		stats.OrdersHandled = 50
		stats.AvgServiceTimeSec = serviceTime
		stats.ErrorCount = 1
		stats.BeforeCreate()
		if err := staff.Create(ctx, stats); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	report, err := reporter.StaffReport(ctx, userID)
	if err != nil {
		t.Fatalf("StaffReport() error = %v", err)
	}

	if report.OrdersHandled != 200 {
		t.Errorf("OrdersHandled = %d, want 200", report.OrdersHandled)
	}
	if report.AvgServiceTimeSec != 277.5 {
		t.Errorf("AvgServiceTimeSec = %v, want 277.5", report.AvgServiceTimeSec)
	}
	if report.ErrorRatePercent != 2.0 {
		t.Errorf("ErrorRatePercent = %v, want 2.0", report.ErrorRatePercent)
	}
	if report.ServiceTimeTrend != TrendDown {
		t.Errorf("ServiceTimeTrend = %q, want %q", report.ServiceTimeTrend, TrendDown)
	}
}

func TestReporterStaffReportUnknownUser(t *testing.T) {
	reporter := NewReporter(NewFakeOrderAnalyticsRepo(), NewFakeStaffAnalyticsRepo())

	_, err := reporter.StaffReport(context.Background(), uuid.New())
	if !fail.Is(err, fail.NotFound) {
		t.Errorf("StaffReport() error = %v, want NotFound", err)
	}
}

func TestFakeStaffAnalyticsRepoListByRoleUnsupported(t *testing.T) {
	repo := NewFakeStaffAnalyticsRepo()

	_, err := repo.ListByRole(context.Background(), "chef")
	if err != fail.ErrUnsupported {
		t.Errorf("ListByRole() error = %v, want ErrUnsupported", err)
	}
}

func TestFakeMetricRepoContract(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeMetricRepo()

	metric := NewKitchenMetric()
	metric.Name = "tickets cleared per hour"
	metric.Value = 42
	metric.BeforeCreate()

	if err := repo.Create(ctx, metric); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, metric); !fail.Is(err, fail.Conflict) {
		t.Errorf("duplicate Create() error = %v, want Conflict", err)
	}

	got, err := repo.Get(ctx, metric.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Value != 42 {
		t.Errorf("Value = %v, want 42", got.Value)
	}

	if err := repo.Delete(ctx, metric.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, metric.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() after delete error = %v, want NotFound", err)
	}
}

func TestFakeMetricRepoListByStation(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeMetricRepo()
	stationID := uuid.New()

	attributed := NewKitchenMetric()
	attributed.Name = "grill tickets per hour"
	attributed.StationID = &stationID
	attributed.BeforeCreate()

	unattributed := NewKitchenMetric()
	unattributed.Name = "covers per hour"
	unattributed.BeforeCreate()

	for _, metric := range []*KitchenMetric{attributed, unattributed} {
		if err := repo.Create(ctx, metric); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.ListByStation(ctx, stationID)
	if err != nil {
		t.Fatalf("ListByStation() error = %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("ListByStation() returned %d metrics, want 1", len(result))
	}
	if result[0].ID != attributed.ID {
		t.Errorf("ListByStation() returned %s, want %s", result[0].ID, attributed.ID)
	}
}
