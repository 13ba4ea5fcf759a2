package kitchen

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
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	stationRepo StationRepo
	timerRepo   TimerRepo
	publisher   events.Publisher
	logger      aqm.Logger
	config      *aqm.Config
	tlm         *telemetry.HTTP
}

func NewHandler(stationRepo StationRepo, timerRepo TimerRepo, publisher events.Publisher, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		stationRepo: stationRepo,
		timerRepo:   timerRepo,
		publisher:   publisher,
		logger:      logger,
		config:      config,
		tlm:         telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stations", func(r chi.Router) {
		r.Post("/", h.CreateStation)
		r.Get("/", h.ListStations)
		r.Get("/{id}", h.GetStation)
		r.Patch("/{id}", h.UpdateStation)
		r.Delete("/{id}", h.DeleteStation)

		r.Post("/{id}/orders", h.AssignOrder)
		r.Delete("/{id}/orders/{orderID}", h.ReleaseOrder)
		r.Post("/{id}/staff", h.AssignStaff)
		r.Delete("/{id}/staff/{staffID}", h.UnassignStaff)
	})

	r.Route("/timers", func(r chi.Router) {
		r.Post("/", h.CreateTimer)
		r.Get("/", h.ListTimers)
		r.Get("/{id}", h.GetTimer)
		r.Delete("/{id}", h.DeleteTimer)

		r.Patch("/{id}/start", h.timerTransition("start", (*Timer).Start))
		r.Patch("/{id}/pause", h.timerTransition("pause", (*Timer).Pause))
		r.Patch("/{id}/resume", h.timerTransition("resume", (*Timer).Resume))
		r.Patch("/{id}/complete", h.timerTransition("complete", (*Timer).Complete))
		r.Patch("/{id}/cancel", h.timerTransition("cancel", (*Timer).Cancel))
		r.Patch("/{id}/expire", h.timerTransition("expire", (*Timer).Expire))
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Station handlers

func (h *Handler) CreateStation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateStation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req StationCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateStationCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	station := NewStation()
	station.Name = req.Name
	station.Type = req.Type
	station.Capacity = req.Capacity
	station.BeforeCreate()

	if err := h.stationRepo.Create(ctx, station); err != nil {
		log.Error("cannot create station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(station)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, station, links...)
}

func (h *Handler) GetStation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetStation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	station, err := h.stationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(station)
	aqm.RespondSuccess(w, station, links...)
}

func (h *Handler) ListStations(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListStations")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Station
		err    error
	)

	if stationType := r.URL.Query().Get("type"); stationType != "" {
		result, err = h.stationRepo.ListByType(ctx, stationType)
	} else {
		result, err = h.stationRepo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list stations", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "station")
}

func (h *Handler) UpdateStation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateStation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req StationUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	station, err := h.stationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if req.Name != "" {
		station.Name = req.Name
	}
	if req.Type != "" {
		station.Type = req.Type
	}
	if req.Capacity != nil {
		station.Capacity = *req.Capacity
	}
	if req.Active != nil {
		station.Active = *req.Active
	}
	station.BeforeUpdate()

	if err := h.stationRepo.Save(ctx, station); err != nil {
		log.Error("cannot update station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(station)
	aqm.RespondSuccess(w, station, links...)
}

func (h *Handler) DeleteStation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteStation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.stationRepo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// AssignOrder records an order on the station. The read-modify-write is not
// transactional: two concurrent assignments race and the last write wins.
func (h *Handler) AssignOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AssignOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req StationOrderRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if req.OrderID == uuid.Nil {
		aqm.RespondError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	station, err := h.stationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	station.AddOrder(req.OrderID)

	if err := h.stationRepo.Save(ctx, station); err != nil {
		log.Error("cannot save station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishWorkloadEvent(ctx, station, req.OrderID)

	links := aqm.RESTfulLinksFor(station)
	aqm.RespondSuccess(w, station, links...)
}

func (h *Handler) ReleaseOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ReleaseOrder")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	station, err := h.stationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	station.RemoveOrder(orderID)

	if err := h.stationRepo.Save(ctx, station); err != nil {
		log.Error("cannot save station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishWorkloadEvent(ctx, station, orderID)

	links := aqm.RESTfulLinksFor(station)
	aqm.RespondSuccess(w, station, links...)
}

func (h *Handler) AssignStaff(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AssignStaff")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req StationStaffRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if req.StaffID == uuid.Nil {
		aqm.RespondError(w, http.StatusBadRequest, "staff_id is required")
		return
	}

	station, err := h.stationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	station.AssignStaff(req.StaffID)

	if err := h.stationRepo.Save(ctx, station); err != nil {
		log.Error("cannot save station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(station)
	aqm.RespondSuccess(w, station, links...)
}

func (h *Handler) UnassignStaff(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UnassignStaff")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	staffID, err := uuid.Parse(chi.URLParam(r, "staffID"))
	if err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid staff ID")
		return
	}

	station, err := h.stationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	station.UnassignStaff(staffID)

	if err := h.stationRepo.Save(ctx, station); err != nil {
		log.Error("cannot save station", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(station)
	aqm.RespondSuccess(w, station, links...)
}

// Timer handlers

func (h *Handler) CreateTimer(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateTimer")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req TimerCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateTimerCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	timer := NewTimer()
	timer.Label = req.Label
	timer.Kind = req.Kind
	timer.StationID = req.StationID
	timer.DurationSec = req.DurationSec
	timer.BeforeCreate()

	if err := h.timerRepo.Create(ctx, timer); err != nil {
		log.Error("cannot create timer", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(timer)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, timer, links...)
}

func (h *Handler) GetTimer(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetTimer")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	timer, err := h.timerRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get timer", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(timer)
	aqm.RespondSuccess(w, timer, links...)
}

func (h *Handler) ListTimers(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTimers")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Timer
		err    error
	)

	if stationStr := r.URL.Query().Get("station"); stationStr != "" {
		stationID, parseErr := uuid.Parse(stationStr)
		if parseErr != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid station ID")
			return
		}
		result, err = h.timerRepo.ListByStation(ctx, stationID)
	} else if status := r.URL.Query().Get("status"); status != "" {
		result, err = h.timerRepo.ListByStatus(ctx, status)
	} else {
		result, err = h.timerRepo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list timers", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "timer")
}

func (h *Handler) DeleteTimer(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteTimer")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.timerRepo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete timer", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

func (h *Handler) timerTransition(action string, apply func(*Timer)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w, r, finish := h.tlm.Start(w, r, "Handler.TimerTransition")
		defer finish()
		log := h.log(r)
		ctx := r.Context()

		id, ok := h.parseIDParam(w, r, log)
		if !ok {
			return
		}

		timer, err := h.timerRepo.Get(ctx, id)
		if err != nil {
			log.Debug("cannot get timer", "error", err, "action", action)
			aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
			return
		}

		previousStatus := timer.Status
		apply(timer)

		if err := h.timerRepo.Save(ctx, timer); err != nil {
			log.Error("cannot save timer", "error", err, "action", action)
			aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
			return
		}

		h.publishTimerEvent(ctx, timer, previousStatus)

		links := aqm.RESTfulLinksFor(timer)
		aqm.RespondSuccess(w, timer, links...)
	}
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

func (h *Handler) publishWorkloadEvent(ctx context.Context, station *Station, orderID OrderID) {
	if h.publisher == nil || station == nil {
		return
	}

	evt := event.StationWorkloadEvent{
		EventType:  event.EventStationWorkloadChange,
		OccurredAt: time.Now().UTC(),
		StationID:  station.ID.String(),
		Workload:   station.Workload,
		Capacity:   station.Capacity,
		AtCapacity: station.AtCapacity(),
		OrderID:    orderID.String(),
	}

	eventBytes, _ := json.Marshal(evt)
	if err := h.publisher.Publish(ctx, event.StationsTopic, eventBytes); err != nil {
		h.logger.Errorf("Failed to publish workload event: %v", err)
	}
}

func (h *Handler) publishTimerEvent(ctx context.Context, timer *Timer, previousStatus string) {
	if h.publisher == nil || timer == nil {
		return
	}

	evt := event.TimerEvent{
		EventType:      event.EventTimerStatusChanged,
		OccurredAt:     time.Now().UTC(),
		TimerID:        timer.ID.String(),
		Status:         timer.Status,
		PreviousStatus: previousStatus,
	}
	if timer.StationID != nil {
		evt.StationID = timer.StationID.String()
	}

	eventBytes, _ := json.Marshal(evt)
	if err := h.publisher.Publish(ctx, event.TimersTopic, eventBytes); err != nil {
		h.logger.Errorf("Failed to publish timer event: %v", err)
	}
}
