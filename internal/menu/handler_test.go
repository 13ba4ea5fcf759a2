package menu

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func serveMenu(repo RecipeRepo) *chi.Mux {
	h := NewHandler(repo, aqm.NewConfig(), aqm.NewNoopLogger())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestHandlerCreateRecipe(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		expectedStatus int
	}{
		{"valid", `{"name":"Margherita","category":"pizza","difficulty":"medium","price":14.50}`, http.StatusCreated},
		{"missingName", `{"category":"pizza","price":14.50}`, http.StatusBadRequest},
		{"missingCategory", `{"name":"Margherita","price":14.50}`, http.StatusBadRequest},
		{"badDifficulty", `{"name":"X","category":"pizza","difficulty":"impossible"}`, http.StatusBadRequest},
		{"negativePrice", `{"name":"X","category":"pizza","price":-1}`, http.StatusBadRequest},
		{"invalidJSON", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := serveMenu(NewFakeRecipeRepo())

			req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewBufferString(tt.payload))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerCreateRecipeStoresCents(t *testing.T) {
	repo := NewFakeRecipeRepo()
	router := serveMenu(repo)

	payload := `{"name":"Margherita","category":"pizza","price":14.50}`
	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	recipes, _ := repo.List(context.Background())
	if len(recipes) != 1 {
		t.Fatalf("stored %d recipes, want 1", len(recipes))
	}
	if recipes[0].Price.Cents != 1450 {
		t.Errorf("Price.Cents = %d, want 1450", recipes[0].Price.Cents)
	}
}

func TestHandlerGetRecipe(t *testing.T) {
	repo := NewFakeRecipeRepo()
	recipe := newTestRecipe()
	if err := repo.Create(context.Background(), recipe); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveMenu(repo)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"found", "/recipes/" + recipe.ID.String(), http.StatusOK},
		{"missing", "/recipes/" + uuid.New().String(), http.StatusNotFound},
		{"invalidID", "/recipes/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerUpdateRecipe(t *testing.T) {
	repo := NewFakeRecipeRepo()
	recipe := newTestRecipe()
	if err := repo.Create(context.Background(), recipe); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveMenu(repo)

	payload := `{"name":"Margherita DOC","price":16.00}`
	req := httptest.NewRequest(http.MethodPatch, "/recipes/"+recipe.ID.String(), bytes.NewBufferString(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	got, _ := repo.Get(context.Background(), recipe.ID)
	if got.Name != "Margherita DOC" || got.Price.Cents != 1600 {
		t.Errorf("updated recipe = %s/%d cents", got.Name, got.Price.Cents)
	}
	if got.Category != "pizza" {
		t.Errorf("untouched field changed: category = %s", got.Category)
	}
}

func TestHandlerDeleteRecipe(t *testing.T) {
	repo := NewFakeRecipeRepo()
	recipe := newTestRecipe()
	if err := repo.Create(context.Background(), recipe); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	router := serveMenu(repo)

	req := httptest.NewRequest(http.MethodDelete, "/recipes/"+recipe.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/recipes/"+recipe.ID.String(), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}
