package menu

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	repo   RecipeRepo
	logger aqm.Logger
	config *aqm.Config
	tlm    *telemetry.HTTP
}

func NewHandler(repo RecipeRepo, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
		config: config,
		tlm:    telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recipes", func(r chi.Router) {
		r.Post("/", h.CreateRecipe)
		r.Get("/", h.ListRecipes)
		r.Get("/{id}", h.GetRecipe)
		r.Patch("/{id}", h.UpdateRecipe)
		r.Delete("/{id}", h.DeleteRecipe)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateRecipe")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req RecipeCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateRecipeCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	recipe := NewRecipe()
	recipe.Name = req.Name
	recipe.Description = req.Description
	recipe.Category = req.Category
	recipe.Difficulty = req.Difficulty
	recipe.PrepTimeMin = req.PrepTimeMin
	recipe.CookTimeMin = req.CookTimeMin
	recipe.Servings = req.Servings
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	recipe.Price = money.FromFloat(req.Price)
	recipe.DietaryTags = req.DietaryTags
	recipe.Allergens = req.Allergens
	recipe.BeforeCreate()

	if err := h.repo.Create(ctx, recipe); err != nil {
		log.Error("cannot create recipe", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(recipe)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, recipe, links...)
}

func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetRecipe")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	recipe, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get recipe", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(recipe)
	aqm.RespondSuccess(w, recipe, links...)
}

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListRecipes")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Recipe
		err    error
	)

	if category := r.URL.Query().Get("category"); category != "" {
		result, err = h.repo.ListByCategory(ctx, category)
	} else if tag := r.URL.Query().Get("tag"); tag != "" {
		result, err = h.repo.ListByTag(ctx, tag)
	} else {
		result, err = h.repo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list recipes", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "recipe")
}

func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateRecipe")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req RecipeUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	recipe, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get recipe", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Category != "" {
		recipe.Category = req.Category
	}
	if req.Difficulty != "" {
		if !validDifficulty(req.Difficulty) {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid difficulty")
			return
		}
		recipe.Difficulty = req.Difficulty
	}
	if req.PrepTimeMin != nil {
		recipe.PrepTimeMin = *req.PrepTimeMin
	}
	if req.CookTimeMin != nil {
		recipe.CookTimeMin = *req.CookTimeMin
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.Ingredients != nil {
		recipe.Ingredients = req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = req.Instructions
	}
	if req.Price != nil {
		if *req.Price < 0 {
			aqm.RespondError(w, http.StatusBadRequest, "Price cannot be negative")
			return
		}
		recipe.Price = money.FromFloat(*req.Price)
	}
	if req.DietaryTags != nil {
		recipe.DietaryTags = req.DietaryTags
	}
	if req.Allergens != nil {
		recipe.Allergens = req.Allergens
	}
	if req.Active != nil {
		recipe.Active = *req.Active
	}
	recipe.BeforeUpdate()

	if err := h.repo.Save(ctx, recipe); err != nil {
		log.Error("cannot update recipe", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(recipe)
	aqm.RespondSuccess(w, recipe, links...)
}

func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteRecipe")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete recipe", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request, log aqm.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		log.Debug("missing id parameter")
		aqm.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Debug("invalid id parameter", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request, log aqm.Logger, out interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Debug("error reading request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Could not read request body")
		return false
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		aqm.RespondError(w, http.StatusBadRequest, "Request body is empty")
		return false
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Debug("error decoding JSON", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}

	return true
}
