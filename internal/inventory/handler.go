package inventory

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
	repo   ItemRepo
	logger aqm.Logger
	config *aqm.Config
	tlm    *telemetry.HTTP
}

func NewHandler(repo ItemRepo, config *aqm.Config, logger aqm.Logger) *Handler {
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
	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.CreateItem)
		r.Get("/", h.ListItems)
		r.Get("/low-stock", h.ListLowStock)
		r.Get("/expiring", h.ListExpiring)
		r.Get("/{id}", h.GetItem)
		r.Patch("/{id}", h.UpdateItem)
		r.Delete("/{id}", h.DeleteItem)

		r.Post("/{id}/adjust", h.AdjustStock)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req ItemCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateItemCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	item := NewItem()
	item.Name = req.Name
	item.Category = req.Category
	item.Quantity = req.Quantity
	item.Unit = req.Unit
	item.ReorderLevel = req.ReorderLevel
	item.UnitCost = money.FromFloat(req.UnitCost)
	item.Supplier = req.Supplier
	item.Location = req.Location
	item.ExpiresAt = req.ExpiresAt
	item.BeforeCreate()

	if err := h.repo.Create(ctx, item); err != nil {
		log.Error("cannot create inventory item", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(item)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, item, links...)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get inventory item", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(item)
	aqm.RespondSuccess(w, item, links...)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListItems")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Item
		err    error
	)

	if category := r.URL.Query().Get("category"); category != "" {
		result, err = h.repo.ListByCategory(ctx, category)
	} else {
		result, err = h.repo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list inventory items", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "item")
}

func (h *Handler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListLowStock")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	result, err := h.repo.ListLowStock(ctx)
	if err != nil {
		log.Error("cannot list low-stock items", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "item")
}

func (h *Handler) ListExpiring(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListExpiring")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	cutoff := time.Now().Add(72 * time.Hour)
	if before := r.URL.Query().Get("before"); before != "" {
		parsed, err := time.Parse(time.RFC3339, before)
		if err != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid before parameter, expected RFC3339")
			return
		}
		cutoff = parsed
	}

	result, err := h.repo.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		log.Error("cannot list expiring items", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "item")
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ItemUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get inventory item", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			aqm.RespondError(w, http.StatusBadRequest, "Quantity cannot be negative")
			return
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.UnitCost != nil {
		item.UnitCost = money.FromFloat(*req.UnitCost)
	}
	if req.Supplier != nil {
		item.Supplier = *req.Supplier
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.ExpiresAt != nil {
		item.ExpiresAt = req.ExpiresAt
	}
	item.BeforeUpdate()

	if err := h.repo.Save(ctx, item); err != nil {
		log.Error("cannot update inventory item", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(item)
	aqm.RespondSuccess(w, item, links...)
}

// AdjustStock applies a signed quantity delta. The read-modify-write is not
// transactional: concurrent adjustments race and the last write wins.
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AdjustStock")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req StockAdjustRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	item, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get inventory item", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	item.Adjust(req.Delta)
	item.BeforeUpdate()

	if err := h.repo.Save(ctx, item); err != nil {
		log.Error("cannot save inventory item", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if item.IsLowStock() {
		log.Info("item at or below reorder level", "item_id", item.ID, "quantity", item.Quantity, "reorder_level", item.ReorderLevel)
	}

	links := aqm.RESTfulLinksFor(item)
	aqm.RespondSuccess(w, item, links...)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteItem")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete inventory item", "error", err)
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
