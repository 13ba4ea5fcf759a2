package costs

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	costs       CostRepo
	centers     CostCenterRepo
	recipeCosts RecipeCostRepo
	reporter    *Reporter
	logger      aqm.Logger
	config      *aqm.Config
	tlm         *telemetry.HTTP
}

func NewHandler(costs CostRepo, centers CostCenterRepo, recipeCosts RecipeCostRepo, reporter *Reporter, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		costs:       costs,
		centers:     centers,
		recipeCosts: recipeCosts,
		reporter:    reporter,
		logger:      logger,
		config:      config,
		tlm:         telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/costs", func(r chi.Router) {
		r.Post("/", h.CreateCost)
		r.Get("/", h.ListCosts)
		r.Get("/{id}", h.GetCost)
		r.Delete("/{id}", h.DeleteCost)
	})

	r.Route("/cost-centers", func(r chi.Router) {
		r.Post("/", h.CreateCostCenter)
		r.Get("/", h.ListCostCenters)
		r.Get("/{id}", h.GetCostCenter)
		r.Delete("/{id}", h.DeleteCostCenter)

		r.Get("/{id}/report", h.CostCenterReport)
	})

	r.Route("/recipe-costs", func(r chi.Router) {
		r.Post("/", h.CreateRecipeCost)
		r.Get("/", h.ListRecipeCosts)
		r.Get("/{id}", h.GetRecipeCost)
		r.Delete("/{id}", h.DeleteRecipeCost)
	})

	r.Get("/recipes/{id}/profitability", h.RecipeProfitabilityReport)
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Cost handlers

func (h *Handler) CreateCost(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateCost")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req CostCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateCostCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	if req.CostCenterID != nil {
		if _, err := h.centers.Get(ctx, *req.CostCenterID); err != nil {
			log.Debug("cannot get cost center", "error", err)
			aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
			return
		}
	}

	cost := NewCost()
	cost.CostCenterID = req.CostCenterID
	if req.Category != "" {
		cost.Category = req.Category
	}
	cost.Description = req.Description
	cost.Amount = money.FromFloat(req.Amount)
	if req.IncurredAt != nil {
		cost.IncurredAt = *req.IncurredAt
	}
	cost.BeforeCreate()

	if err := h.costs.Create(ctx, cost); err != nil {
		log.Error("cannot create cost", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(cost)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, cost, links...)
}

func (h *Handler) GetCost(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCost")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	cost, err := h.costs.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get cost", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(cost)
	aqm.RespondSuccess(w, cost, links...)
}

func (h *Handler) ListCosts(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCosts")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Cost
		err    error
	)

	if centerStr := r.URL.Query().Get("center"); centerStr != "" {
		centerID, parseErr := uuid.Parse(centerStr)
		if parseErr != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid center ID")
			return
		}
		result, err = h.costs.ListByCenter(ctx, centerID)
	} else if category := r.URL.Query().Get("category"); category != "" {
		result, err = h.costs.ListByCategory(ctx, category)
	} else if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, parseErr := time.Parse(time.RFC3339, fromStr)
		if parseErr != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid from parameter, expected RFC3339")
			return
		}
		to := time.Now()
		if toStr := r.URL.Query().Get("to"); toStr != "" {
			to, parseErr = time.Parse(time.RFC3339, toStr)
			if parseErr != nil {
				aqm.RespondError(w, http.StatusBadRequest, "Invalid to parameter, expected RFC3339")
				return
			}
		}
		result, err = h.costs.ListBetween(ctx, from, to)
	} else {
		result, err = h.costs.List(ctx)
	}

	if err != nil {
		log.Error("cannot list costs", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "cost")
}

func (h *Handler) DeleteCost(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteCost")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.costs.Delete(ctx, id); err != nil {
		log.Debug("cannot delete cost", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// Cost center handlers

func (h *Handler) CreateCostCenter(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateCostCenter")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req CostCenterCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateCostCenterCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	center := NewCostCenter()
	center.Name = req.Name
	center.Period = req.Period
	center.Budget = money.FromFloat(req.Budget)
	center.Description = req.Description
	center.BeforeCreate()

	if err := h.centers.Create(ctx, center); err != nil {
		log.Error("cannot create cost center", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(center)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, center, links...)
}

func (h *Handler) GetCostCenter(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetCostCenter")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	center, err := h.centers.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get cost center", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(center)
	aqm.RespondSuccess(w, center, links...)
}

func (h *Handler) ListCostCenters(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCostCenters")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	result, err := h.centers.List(ctx)
	if err != nil {
		log.Error("cannot list cost centers", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "costcenter")
}

func (h *Handler) DeleteCostCenter(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteCostCenter")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.centers.Delete(ctx, id); err != nil {
		log.Debug("cannot delete cost center", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

func (h *Handler) CostCenterReport(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CostCenterReport")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	report, err := h.reporter.CenterReport(ctx, id)
	if err != nil {
		log.Debug("cannot build cost center report", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, report, nil)
}

// Recipe cost handlers

func (h *Handler) CreateRecipeCost(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateRecipeCost")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req RecipeCostCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateRecipeCostCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	recipeCost := NewRecipeCost()
	recipeCost.RecipeID = req.RecipeID
	recipeCost.IngredientCost = money.FromFloat(req.IngredientCost)
	recipeCost.LaborCost = money.FromFloat(req.LaborCost)
	recipeCost.OverheadCost = money.FromFloat(req.OverheadCost)
	recipeCost.MenuPrice = money.FromFloat(req.MenuPrice)
	recipeCost.BeforeCreate()

	if err := h.recipeCosts.Create(ctx, recipeCost); err != nil {
		log.Error("cannot create recipe cost", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(recipeCost)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, recipeCost, links...)
}

func (h *Handler) GetRecipeCost(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetRecipeCost")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	recipeCost, err := h.recipeCosts.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get recipe cost", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(recipeCost)
	aqm.RespondSuccess(w, recipeCost, links...)
}

func (h *Handler) ListRecipeCosts(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListRecipeCosts")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	result, err := h.recipeCosts.List(ctx)
	if err != nil {
		log.Error("cannot list recipe costs", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "recipecost")
}

func (h *Handler) DeleteRecipeCost(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteRecipeCost")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.recipeCosts.Delete(ctx, id); err != nil {
		log.Debug("cannot delete recipe cost", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

func (h *Handler) RecipeProfitabilityReport(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RecipeProfitabilityReport")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	report, err := h.reporter.RecipeReport(ctx, id)
	if err != nil {
		log.Debug("cannot build recipe profitability report", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, report, nil)
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
