package costs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/enums/costcategory"
	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

func newTestCenter() *CostCenter {
	center := NewCostCenter()
	center.Name = "Kitchen Q3"
	center.Period = "2026-Q3"
	center.Budget = money.FromCents(100000)
	center.BeforeCreate()
	return center
}

func recordCost(t *testing.T, repo CostRepo, centerID uuid.UUID, category string, cents int64) *Cost {
	t.Helper()
	cost := NewCost()
	cost.CostCenterID = &centerID
	cost.Category = category
	cost.Description = "test spend"
	cost.Amount = money.FromCents(cents)
	cost.BeforeCreate()
	if err := repo.Create(context.Background(), cost); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return cost
}

func TestReporterCenterReport(t *testing.T) {
	ctx := context.Background()
	centers := NewFakeCostCenterRepo()
	repo := NewFakeCostRepo()
	reporter := NewReporter(centers, repo, NewFakeRecipeCostRepo())

	center := newTestCenter()
	if err := centers.Create(ctx, center); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	recordCost(t, repo, center.ID, costcategory.Categories.Ingredients.Code(), 60000)
	recordCost(t, repo, center.ID, costcategory.Categories.Labor.Code(), 50000)

	// Spend against another center must not leak into the report.
	other := newTestCenter()
	other.Name = "Bar Q3"
	if err := centers.Create(ctx, other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	recordCost(t, repo, other.ID, costcategory.Categories.Utilities.Code(), 9999)

	report, err := reporter.CenterReport(ctx, center.ID)
	if err != nil {
		t.Fatalf("CenterReport() error = %v", err)
	}

	if report.ActualSpend.Cents != 110000 {
		t.Errorf("ActualSpend = %d, want 110000", report.ActualSpend.Cents)
	}
	if report.VariancePercent != 10.0 {
		t.Errorf("VariancePercent = %v, want 10.0", report.VariancePercent)
	}
	if report.EfficiencyPercent != 90.91 {
		t.Errorf("EfficiencyPercent = %v, want 90.91", report.EfficiencyPercent)
	}
	if report.CostCount != 2 {
		t.Errorf("CostCount = %d, want 2", report.CostCount)
	}
	if got := report.ByCategory[costcategory.Categories.Ingredients.Code()].Cents; got != 60000 {
		t.Errorf("ByCategory[ingredients] = %d, want 60000", got)
	}
	if got := report.ByCategory[costcategory.Categories.Labor.Code()].Cents; got != 50000 {
		t.Errorf("ByCategory[labor] = %d, want 50000", got)
	}
	if _, present := report.ByCategory[costcategory.Categories.Utilities.Code()]; present {
		t.Error("ByCategory contains spend from another center")
	}
}

func TestReporterCenterReportNoSpend(t *testing.T) {
	ctx := context.Background()
	centers := NewFakeCostCenterRepo()
	reporter := NewReporter(centers, NewFakeCostRepo(), NewFakeRecipeCostRepo())

	center := newTestCenter()
	if err := centers.Create(ctx, center); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	report, err := reporter.CenterReport(ctx, center.ID)
	if err != nil {
		t.Fatalf("CenterReport() error = %v", err)
	}

	if !report.ActualSpend.IsZero() {
		t.Errorf("ActualSpend = %d, want 0", report.ActualSpend.Cents)
	}
	if report.EfficiencyPercent != 100.0 {
		t.Errorf("EfficiencyPercent = %v, want 100.0", report.EfficiencyPercent)
	}
}

func TestReporterCenterReportUnknownCenter(t *testing.T) {
	reporter := NewReporter(NewFakeCostCenterRepo(), NewFakeCostRepo(), NewFakeRecipeCostRepo())

	_, err := reporter.CenterReport(context.Background(), uuid.New())
	if !fail.Is(err, fail.NotFound) {
		t.Errorf("CenterReport() error = %v, want NotFound", err)
	}
}

func TestReporterRecipeReport(t *testing.T) {
	ctx := context.Background()
	recipeCosts := NewFakeRecipeCostRepo()
	reporter := NewReporter(NewFakeCostCenterRepo(), NewFakeCostRepo(), recipeCosts)

	recipeID := uuid.New()
	breakdown := NewRecipeCost()
	breakdown.RecipeID = recipeID
	breakdown.IngredientCost = money.FromCents(300)
	breakdown.LaborCost = money.FromCents(150)
	breakdown.OverheadCost = money.FromCents(50)
	breakdown.MenuPrice = money.FromCents(1450)
	breakdown.CalculatedAt = time.Now()
	breakdown.BeforeCreate()
	if err := recipeCosts.Create(ctx, breakdown); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	report, err := reporter.RecipeReport(ctx, recipeID)
	if err != nil {
		t.Fatalf("RecipeReport() error = %v", err)
	}

	if report.TotalCost.Cents != 500 {
		t.Errorf("TotalCost = %d, want 500", report.TotalCost.Cents)
	}
	if report.Margin.Cents != 950 {
		t.Errorf("Margin = %d, want 950", report.Margin.Cents)
	}
	if report.MarginPercent != 65.52 {
		t.Errorf("MarginPercent = %v, want 65.52", report.MarginPercent)
	}
}

func TestReporterRecipeReportNoBreakdown(t *testing.T) {
	reporter := NewReporter(NewFakeCostCenterRepo(), NewFakeCostRepo(), NewFakeRecipeCostRepo())

	_, err := reporter.RecipeReport(context.Background(), uuid.New())
	if !fail.Is(err, fail.NotFound) {
		t.Errorf("RecipeReport() error = %v, want NotFound", err)
	}
}

func TestFakeCostRepoContract(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeCostRepo()

	cost := NewCost()
	cost.Description = "walk-in repair"
	cost.Amount = money.FromCents(25000)
	cost.BeforeCreate()

	if err := repo.Create(ctx, cost); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, cost); !fail.Is(err, fail.Conflict) {
		t.Errorf("duplicate Create() error = %v, want Conflict", err)
	}

	got, err := repo.Get(ctx, cost.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Amount.Cents != 25000 {
		t.Errorf("Amount = %d, want 25000", got.Amount.Cents)
	}

	if err := repo.Delete(ctx, cost.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, cost.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() after delete error = %v, want NotFound", err)
	}
	if err := repo.Delete(ctx, cost.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("second Delete() error = %v, want NotFound", err)
	}
}

func TestFakeCostRepoListBetween(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeCostRepo()
	now := time.Now()

	inside := NewCost()
	inside.Description = "inside window"
	inside.IncurredAt = now.Add(-time.Hour)
	inside.BeforeCreate()

	outside := NewCost()
	outside.Description = "outside window"
	outside.IncurredAt = now.Add(-48 * time.Hour)
	outside.BeforeCreate()

	for _, cost := range []*Cost{inside, outside} {
		if err := repo.Create(ctx, cost); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	result, err := repo.ListBetween(ctx, now.Add(-2*time.Hour), now)
	if err != nil {
		t.Fatalf("ListBetween() error = %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("ListBetween() returned %d costs, want 1", len(result))
	}
	if result[0].ID != inside.ID {
		t.Errorf("ListBetween() returned %s, want %s", result[0].ID, inside.ID)
	}
}

func TestFakeRecipeCostRepoOneBreakdownPerRecipe(t *testing.T) {
	ctx := context.Background()
	repo := NewFakeRecipeCostRepo()
	recipeID := uuid.New()

	first := NewRecipeCost()
	first.RecipeID = recipeID
	first.BeforeCreate()
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	second := NewRecipeCost()
	second.RecipeID = recipeID
	second.BeforeCreate()
	if err := repo.Create(ctx, second); !fail.Is(err, fail.Conflict) {
		t.Errorf("second breakdown Create() error = %v, want Conflict", err)
	}

	// Deleting the breakdown frees the recipe for a new one.
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Errorf("Create() after delete error = %v", err)
	}
}
