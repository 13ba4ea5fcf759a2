package tables

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
	tableRepo       TableRepo
	reservationRepo ReservationRepo
	publisher       events.Publisher
	logger          aqm.Logger
	config          *aqm.Config
	tlm             *telemetry.HTTP
}

func NewHandler(tableRepo TableRepo, reservationRepo ReservationRepo, publisher events.Publisher, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		tableRepo:       tableRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
		logger:          logger,
		config:          config,
		tlm:             telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tables", func(r chi.Router) {
		r.Post("/", h.CreateTable)
		r.Get("/", h.ListTables)
		r.Get("/{id}", h.GetTable)
		r.Patch("/{id}", h.UpdateTable)
		r.Delete("/{id}", h.DeleteTable)

		r.Post("/{id}/open", h.OpenTable)
		r.Post("/{id}/close", h.CloseTable)
		r.Post("/{id}/reserve", h.ReserveTable)
		r.Post("/{id}/available", h.MakeTableAvailable)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", h.CreateReservation)
		r.Get("/", h.ListReservations)
		r.Get("/{id}", h.GetReservation)
		r.Patch("/{id}", h.UpdateReservation)
		r.Delete("/{id}", h.DeleteReservation)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Table handlers

func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateTable")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req TableCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateTableCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	table := NewTable()
	table.Number = req.Number
	table.Capacity = req.Capacity
	table.Section = req.Section
	table.BeforeCreate()

	if err := h.tableRepo.Create(ctx, table); err != nil {
		log.Error("cannot create table", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(table)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetTable")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	table, err := h.tableRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get table", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(table)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTables")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Table
		err    error
	)

	if status := r.URL.Query().Get("status"); status != "" {
		if !ValidateStatus(status) {
			aqm.RespondError(w, http.StatusBadRequest, "Unknown status")
			return
		}
		result, err = h.tableRepo.ListByStatus(ctx, status)
	} else if section := r.URL.Query().Get("section"); section != "" {
		result, err = h.tableRepo.ListBySection(ctx, section)
	} else if number := r.URL.Query().Get("number"); number != "" {
		table, getErr := h.tableRepo.GetByNumber(ctx, number)
		if getErr != nil {
			log.Debug("cannot get table by number", "error", getErr)
			aqm.RespondError(w, fail.HTTPStatus(getErr), fail.Message(getErr))
			return
		}
		result = []*Table{table}
	} else {
		result, err = h.tableRepo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list tables", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "table")
}

func (h *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateTable")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req TableUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	table, err := h.tableRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get table", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	previousStatus := table.Status

	if req.Number != "" {
		table.Number = req.Number
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			aqm.RespondError(w, http.StatusBadRequest, "Capacity must be positive")
			return
		}
		table.Capacity = *req.Capacity
	}
	if req.Section != nil {
		table.Section = *req.Section
	}
	if req.Status != "" {
		if !ValidateStatus(req.Status) {
			aqm.RespondError(w, http.StatusBadRequest, "Unknown status")
			return
		}
		table.Status = req.Status
	}
	table.BeforeUpdate()

	if err := h.tableRepo.Save(ctx, table); err != nil {
		log.Error("cannot update table", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if table.Status != previousStatus {
		h.publishStatusEvent(ctx, table, previousStatus)
	}

	links := aqm.RESTfulLinksFor(table)
	aqm.RespondSuccess(w, table, links...)
}

func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteTable")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.tableRepo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete table", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

func (h *Handler) OpenTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.OpenTable")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req TableOpenRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	h.transitionTable(w, r, id, func(table *Table) error {
		return table.Open(req.PartySize, req.ServerID)
	})
}

func (h *Handler) CloseTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CloseTable")
	defer finish()
	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	h.transitionTable(w, r, id, func(table *Table) error {
		table.Close()
		return nil
	})
}

func (h *Handler) ReserveTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ReserveTable")
	defer finish()
	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req TableReserveRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	h.transitionTable(w, r, id, func(table *Table) error {
		return table.Reserve(req.PartySize)
	})
}

func (h *Handler) MakeTableAvailable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MakeTableAvailable")
	defer finish()
	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	h.transitionTable(w, r, id, func(table *Table) error {
		table.MakeAvailable()
		return nil
	})
}

func (h *Handler) transitionTable(w http.ResponseWriter, r *http.Request, id uuid.UUID, apply func(*Table) error) {
	log := h.log(r)
	ctx := r.Context()

	table, err := h.tableRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get table", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	previousStatus := table.Status

	if err := apply(table); err != nil {
		log.Debug("table transition rejected", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}
	table.BeforeUpdate()

	if err := h.tableRepo.Save(ctx, table); err != nil {
		log.Error("cannot save table", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishStatusEvent(ctx, table, previousStatus)

	links := aqm.RESTfulLinksFor(table)
	aqm.RespondSuccess(w, table, links...)
}

// Reservation handlers

func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateReservation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req ReservationCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateReservationCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	// Party size is validated against the table the same way Open does it.
	if req.TableID != nil {
		table, err := h.tableRepo.Get(ctx, *req.TableID)
		if err != nil {
			log.Debug("cannot get table for reservation", "error", err)
			aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
			return
		}
		if req.PartySize > table.Capacity {
			aqm.RespondError(w, http.StatusBadRequest, "Party size exceeds table capacity")
			return
		}
	}

	reservation := NewReservation()
	reservation.TableID = req.TableID
	reservation.GuestName = req.GuestName
	reservation.Phone = req.Phone
	reservation.PartySize = req.PartySize
	reservation.At = req.At
	reservation.Notes = req.Notes
	reservation.BeforeCreate()

	if err := h.reservationRepo.Create(ctx, reservation); err != nil {
		log.Error("cannot create reservation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(reservation)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, reservation, links...)
}

func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetReservation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	reservation, err := h.reservationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get reservation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(reservation)
	aqm.RespondSuccess(w, reservation, links...)
}

func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListReservations")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Reservation
		err    error
	)

	if tableStr := r.URL.Query().Get("table"); tableStr != "" {
		tableID, parseErr := uuid.Parse(tableStr)
		if parseErr != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid table ID")
			return
		}
		result, err = h.reservationRepo.ListByTable(ctx, tableID)
	} else {
		result, err = h.reservationRepo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list reservations", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "reservation")
}

func (h *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateReservation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ReservationUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	reservation, err := h.reservationRepo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get reservation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if req.TableID != nil {
		reservation.TableID = req.TableID
	}
	if req.GuestName != "" {
		reservation.GuestName = req.GuestName
	}
	if req.Phone != nil {
		reservation.Phone = *req.Phone
	}
	if req.PartySize != nil {
		if *req.PartySize <= 0 {
			aqm.RespondError(w, http.StatusBadRequest, "Party size must be positive")
			return
		}
		reservation.PartySize = *req.PartySize
	}
	if req.At != nil {
		reservation.At = *req.At
	}
	if req.Status != "" {
		switch req.Status {
		case ReservationBooked, ReservationSeated, ReservationCancelled, ReservationNoShow:
			reservation.Status = req.Status
		default:
			aqm.RespondError(w, http.StatusBadRequest, "Unknown reservation status")
			return
		}
	}
	if req.Notes != nil {
		reservation.Notes = *req.Notes
	}
	reservation.BeforeUpdate()

	if err := h.reservationRepo.Save(ctx, reservation); err != nil {
		log.Error("cannot update reservation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(reservation)
	aqm.RespondSuccess(w, reservation, links...)
}

func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteReservation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.reservationRepo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete reservation", "error", err)
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

func (h *Handler) publishStatusEvent(ctx context.Context, table *Table, previousStatus string) {
	if h.publisher == nil || table == nil {
		return
	}

	evt := event.TableStatusEvent{
		EventType:      event.EventTableStatusChanged,
		OccurredAt:     time.Now().UTC(),
		TableID:        table.ID.String(),
		Number:         table.Number,
		Status:         table.Status,
		PreviousStatus: previousStatus,
		Section:        table.Section,
	}
	if table.ServerID != nil {
		evt.ServerID = table.ServerID.String()
	}

	eventBytes, _ := json.Marshal(evt)
	if err := h.publisher.Publish(ctx, event.TablesTopic, eventBytes); err != nil {
		h.logger.Errorf("Failed to publish table status event: %v", err)
	}
}
