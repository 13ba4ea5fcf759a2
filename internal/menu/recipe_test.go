package menu

import (
	"context"
	"testing"

	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

func newTestRecipe() *Recipe {
	recipe := NewRecipe()
	recipe.Name = "Margherita"
	recipe.Category = "pizza"
	recipe.Difficulty = DifficultyMedium
	recipe.PrepTimeMin = 20
	recipe.CookTimeMin = 12
	recipe.Servings = 2
	recipe.Price = money.FromCents(1450)
	recipe.DietaryTags = []string{"vegetarian"}
	recipe.Ingredients = []RecipeIngredient{
		{Name: "Dough", Quantity: 250, Unit: "g"},
		{Name: "Tomato sauce", Quantity: 100, Unit: "ml"},
		{Name: "Mozzarella", Quantity: 125, Unit: "g"},
	}
	recipe.BeforeCreate()
	return recipe
}

func TestRecipeTotalTime(t *testing.T) {
	recipe := newTestRecipe()
	if got := recipe.TotalTimeMin(); got != 32 {
		t.Errorf("TotalTimeMin() = %d, want 32", got)
	}
}

func TestRecipeHasTag(t *testing.T) {
	recipe := newTestRecipe()
	if !recipe.HasTag("vegetarian") {
		t.Error("HasTag(vegetarian) = false")
	}
	if recipe.HasTag("vegan") {
		t.Error("HasTag(vegan) = true")
	}
}

func TestFakeRecipeRepoContract(t *testing.T) {
	repo := NewFakeRecipeRepo()
	ctx := context.Background()

	recipe := newTestRecipe()
	if err := repo.Create(ctx, recipe); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(ctx, recipe); !fail.Is(err, fail.Conflict) {
		t.Errorf("duplicate Create() kind = %v, want Conflict", fail.KindOf(err))
	}

	got, err := repo.Get(ctx, recipe.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != recipe.Name || got.Price.Cents != 1450 {
		t.Errorf("Get() = %s/%d cents", got.Name, got.Price.Cents)
	}

	if err := repo.Delete(ctx, recipe.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, recipe.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() after Delete() kind = %v, want NotFound", fail.KindOf(err))
	}
	if err := repo.Save(ctx, recipe); !fail.Is(err, fail.NotFound) {
		t.Errorf("Save() on deleted kind = %v, want NotFound", fail.KindOf(err))
	}
	if err := repo.Delete(ctx, recipe.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("second Delete() kind = %v, want NotFound", fail.KindOf(err))
	}
}

func TestFakeRecipeRepoFilters(t *testing.T) {
	repo := NewFakeRecipeRepo()
	ctx := context.Background()

	pizza := newTestRecipe()
	salad := NewRecipe()
	salad.Name = "Caesar"
	salad.Category = "salad"
	salad.DietaryTags = []string{"gluten-free"}
	salad.BeforeCreate()

	for _, recipe := range []*Recipe{pizza, salad} {
		if err := repo.Create(ctx, recipe); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	byCategory, err := repo.ListByCategory(ctx, "pizza")
	if err != nil || len(byCategory) != 1 || byCategory[0].ID != pizza.ID {
		t.Errorf("ListByCategory() = %d recipes", len(byCategory))
	}

	byTag, err := repo.ListByTag(ctx, "gluten-free")
	if err != nil || len(byTag) != 1 || byTag[0].ID != salad.ID {
		t.Errorf("ListByTag() = %d recipes", len(byTag))
	}

	none, err := repo.ListByCategory(ctx, "dessert")
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("ListByCategory() on empty category should return empty slice")
	}
}
