package orders

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/event"
	"github.com/brigadeclub/brigade/pkg/fail"
	"github.com/brigadeclub/brigade/pkg/money"
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	repo      OrderRepo
	publisher events.Publisher
	logger    aqm.Logger
	config    *aqm.Config
	tlm       *telemetry.HTTP
}

func NewHandler(repo OrderRepo, publisher events.Publisher, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		config:    config,
		tlm:       telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)

		r.Patch("/{id}/status", h.UpdateStatus)
		r.Patch("/{id}/assign", h.AssignStation)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req OrderCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateOrderCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	order := NewOrder()
	order.CustomerID = req.CustomerID
	order.TableNumber = req.TableNumber
	order.Priority = req.Priority
	order.Notes = req.Notes
	order.Items = itemsFromPayload(req.Items)
	order.BeforeCreate()

	if err := h.repo.Create(ctx, order); err != nil {
		log.Error("cannot create order", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishOrderEvent(ctx, order, "", event.EventOrderCreated)

	links := aqm.RESTfulLinksFor(order)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, order, links...)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	order, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get order", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(order)
	aqm.RespondSuccess(w, order, links...)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrders")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	filter := OrderFilter{}

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	if stationStr := r.URL.Query().Get("station"); stationStr != "" {
		stationID, err := uuid.Parse(stationStr)
		if err != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid station ID")
			return
		}
		filter.StationID = &stationID
	}

	result, err := h.repo.List(ctx, filter)
	if err != nil {
		log.Error("cannot list orders", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "order")
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req OrderUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	order, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get order", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if req.Priority != nil {
		order.Priority = *req.Priority
	}
	if req.Items != nil {
		order.Items = itemsFromPayload(req.Items)
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	order.BeforeUpdate()

	if err := h.repo.Save(ctx, order); err != nil {
		log.Error("cannot update order", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(order)
	aqm.RespondSuccess(w, order, links...)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete order", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateStatus")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req OrderStatusRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if errs := ValidateStatus(ctx, req.Status); len(errs) > 0 {
		log.Debug("validation failed", "errors", errs)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	order, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get order", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	previousStatus := order.Status
	order.SetStatus(req.Status)

	if err := h.repo.Save(ctx, order); err != nil {
		log.Error("cannot update order status", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishOrderEvent(ctx, order, previousStatus, event.EventOrderStatusChanged)

	links := aqm.RESTfulLinksFor(order)
	aqm.RespondSuccess(w, order, links...)
}

func (h *Handler) AssignStation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AssignStation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req OrderAssignRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	order, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get order", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	order.AssignStation(req.StationID)

	if err := h.repo.Save(ctx, order); err != nil {
		log.Error("cannot assign station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishOrderEvent(ctx, order, order.Status, event.EventOrderStationChanged)

	links := aqm.RESTfulLinksFor(order)
	aqm.RespondSuccess(w, order, links...)
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
		aqm.RespondError(w, http.StatusBadRequest, "Invalid order ID")
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

func itemsFromPayload(payload []OrderItemPayload) []OrderItem {
	items := make([]OrderItem, 0, len(payload))
	for _, p := range payload {
		items = append(items, OrderItem{
			RecipeID:  p.RecipeID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: money.FromFloat(p.Price),
			Notes:     p.Notes,
		})
	}
	return items
}

func (h *Handler) publishOrderEvent(ctx context.Context, order *Order, previousStatus, eventType string) {
	if h.publisher == nil || order == nil {
		return
	}

	evt := event.OrderEvent{
		EventType:      eventType,
		OccurredAt:     time.Now().UTC(),
		OrderID:        order.ID.String(),
		CustomerID:     order.CustomerID.String(),
		Status:         order.Status,
		PreviousStatus: previousStatus,
		Priority:       order.Priority,
		TableNumber:    order.TableNumber,
	}
	if order.StationID != nil {
		evt.StationID = order.StationID.String()
	}

	eventBytes, _ := json.Marshal(evt)
	if err := h.publisher.Publish(ctx, event.OrdersTopic, eventBytes); err != nil {
		h.logger.Errorf("Failed to publish %s event: %v", eventType, err)
	}
}
