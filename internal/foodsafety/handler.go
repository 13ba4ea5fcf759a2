package foodsafety

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
	recorder   *Recorder
	logs       TemperatureLogRepo
	violations ViolationRepo
	points     ControlPointRepo
	audits     AuditRepo
	publisher  events.Publisher
	logger     aqm.Logger
	config     *aqm.Config
	tlm        *telemetry.HTTP
}

func NewHandler(recorder *Recorder, logs TemperatureLogRepo, violations ViolationRepo, points ControlPointRepo, audits AuditRepo, publisher events.Publisher, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		recorder:   recorder,
		logs:       logs,
		violations: violations,
		points:     points,
		audits:     audits,
		publisher:  publisher,
		logger:     logger,
		config:     config,
		tlm:        telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/foodsafety", func(r chi.Router) {
		r.Route("/temperatures", func(r chi.Router) {
			r.Post("/", h.RecordTemperature)
			r.Get("/", h.ListTemperatures)
			r.Get("/{id}", h.GetTemperature)
			r.Delete("/{id}", h.DeleteTemperature)
		})

		r.Route("/violations", func(r chi.Router) {
			r.Post("/", h.CreateViolation)
			r.Get("/", h.ListViolations)
			r.Get("/{id}", h.GetViolation)
			r.Delete("/{id}", h.DeleteViolation)

			r.Post("/{id}/resolve", h.ResolveViolation)
		})

		r.Route("/control-points", func(r chi.Router) {
			r.Post("/", h.CreateControlPoint)
			r.Get("/", h.ListControlPoints)
			r.Get("/{id}", h.GetControlPoint)
			r.Delete("/{id}", h.DeleteControlPoint)

			r.Post("/{id}/check", h.CheckControlPoint)
		})

		r.Route("/audits", func(r chi.Router) {
			r.Post("/", h.CreateAudit)
			r.Get("/", h.ListAudits)
			r.Get("/{id}", h.GetAudit)
			r.Delete("/{id}", h.DeleteAudit)

			r.Post("/{id}/complete", h.CompleteAudit)
		})
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Temperature handlers

func (h *Handler) RecordTemperature(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.RecordTemperature")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req TemperatureLogCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateTemperatureLogCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	tempLog := NewTemperatureLog()
	tempLog.Location = req.Location
	tempLog.Equipment = req.Equipment
	tempLog.ReadingC = req.ReadingC
	tempLog.MinSafeC = req.MinSafeC
	tempLog.MaxSafeC = req.MaxSafeC
	tempLog.RequiresCorrectiveAction = req.RequiresCorrectiveAction
	tempLog.RecordedBy = req.RecordedBy
	tempLog.Notes = req.Notes
	if req.RecordedAt != nil {
		tempLog.RecordedAt = *req.RecordedAt
	}

	stored, violation, err := h.recorder.Record(ctx, tempLog)
	if err != nil {
		log.Error("cannot record temperature", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}
	if violation != nil {
		log.Info("critical temperature violation raised", "violation_id", violation.ID, "location", violation.Location)
	}

	links := aqm.RESTfulLinksFor(stored)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, stored, links...)
}

func (h *Handler) GetTemperature(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetTemperature")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	tempLog, err := h.logs.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get temperature log", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(tempLog)
	aqm.RespondSuccess(w, tempLog, links...)
}

func (h *Handler) ListTemperatures(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTemperatures")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*TemperatureLog
		err    error
	)

	if location := r.URL.Query().Get("location"); location != "" {
		result, err = h.logs.ListByLocation(ctx, location)
	} else if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		since, parseErr := time.Parse(time.RFC3339, sinceStr)
		if parseErr != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid since parameter, expected RFC3339")
			return
		}
		result, err = h.logs.ListSince(ctx, since)
	} else {
		result, err = h.logs.List(ctx)
	}

	if err != nil {
		log.Error("cannot list temperature logs", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "temperature")
}

func (h *Handler) DeleteTemperature(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteTemperature")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.logs.Delete(ctx, id); err != nil {
		log.Debug("cannot delete temperature log", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// Violation handlers

func (h *Handler) CreateViolation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateViolation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req ViolationCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateViolationCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	violation := NewViolation()
	violation.Kind = req.Kind
	violation.Location = req.Location
	violation.Description = req.Description
	if req.Severity != "" {
		violation.Severity = req.Severity
	}
	violation.CorrectiveAction = req.CorrectiveAction
	violation.BeforeCreate()

	if err := h.violations.Create(ctx, violation); err != nil {
		log.Error("cannot create violation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishViolationEvent(ctx, violation, event.EventViolationCreated)

	links := aqm.RESTfulLinksFor(violation)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, violation, links...)
}

func (h *Handler) GetViolation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetViolation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	violation, err := h.violations.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get violation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(violation)
	aqm.RespondSuccess(w, violation, links...)
}

func (h *Handler) ListViolations(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListViolations")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*Violation
		err    error
	)

	if r.URL.Query().Get("open") == "true" {
		result, err = h.violations.ListOpen(ctx)
	} else if sev := r.URL.Query().Get("severity"); sev != "" {
		result, err = h.violations.ListBySeverity(ctx, sev)
	} else {
		result, err = h.violations.List(ctx)
	}

	if err != nil {
		log.Error("cannot list violations", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "violation")
}

func (h *Handler) ResolveViolation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ResolveViolation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ViolationResolveRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if req.ResolvedBy == uuid.Nil {
		aqm.RespondError(w, http.StatusBadRequest, "resolved_by is required")
		return
	}

	violation, err := h.violations.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get violation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	violation.Resolve(req.ResolvedBy, req.CorrectiveAction)
	violation.BeforeUpdate()

	if err := h.violations.Save(ctx, violation); err != nil {
		log.Error("cannot save violation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	h.publishViolationEvent(ctx, violation, event.EventViolationResolved)

	links := aqm.RESTfulLinksFor(violation)
	aqm.RespondSuccess(w, violation, links...)
}

func (h *Handler) DeleteViolation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteViolation")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.violations.Delete(ctx, id); err != nil {
		log.Debug("cannot delete violation", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// Control point handlers

func (h *Handler) CreateControlPoint(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateControlPoint")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req ControlPointCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateControlPointCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	point := NewControlPoint()
	point.Name = req.Name
	point.Location = req.Location
	point.MinSafeC = req.MinSafeC
	point.MaxSafeC = req.MaxSafeC
	point.CheckEverySec = req.CheckEverySec
	point.BeforeCreate()

	if err := h.points.Create(ctx, point); err != nil {
		log.Error("cannot create control point", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(point)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, point, links...)
}

func (h *Handler) GetControlPoint(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetControlPoint")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	point, err := h.points.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get control point", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(point)
	aqm.RespondSuccess(w, point, links...)
}

func (h *Handler) ListControlPoints(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListControlPoints")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*ControlPoint
		err    error
	)

	if r.URL.Query().Get("due") == "true" {
		result, err = h.points.ListDue(ctx, time.Now())
	} else {
		result, err = h.points.List(ctx)
	}

	if err != nil {
		log.Error("cannot list control points", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "controlpoint")
}

// CheckControlPoint records a reading against the point's own safe band and
// marks the point checked. The reading goes through the same recorder path
// as free-standing temperature logs.
func (h *Handler) CheckControlPoint(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CheckControlPoint")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req ControlPointCheckRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	point, err := h.points.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get control point", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	tempLog := NewTemperatureLog()
	tempLog.Location = point.Location
	tempLog.Equipment = point.Name
	tempLog.ReadingC = req.ReadingC
	tempLog.MinSafeC = point.MinSafeC
	tempLog.MaxSafeC = point.MaxSafeC
	// A control point check outside its band always demands corrective action.
	tempLog.RequiresCorrectiveAction = true
	tempLog.RecordedBy = req.RecordedBy
	tempLog.Notes = req.Notes

	stored, violation, err := h.recorder.Record(ctx, tempLog)
	if err != nil {
		log.Error("cannot record control point check", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}
	if violation != nil {
		log.Info("control point check out of range", "violation_id", violation.ID, "point_id", point.ID)
	}

	point.MarkChecked(stored.RecordedAt)
	point.BeforeUpdate()
	if err := h.points.Save(ctx, point); err != nil {
		log.Error("cannot save control point", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(stored)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, stored, links...)
}

func (h *Handler) DeleteControlPoint(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteControlPoint")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.points.Delete(ctx, id); err != nil {
		log.Debug("cannot delete control point", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// Audit handlers

func (h *Handler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateAudit")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req AuditCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateAuditCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	audit := NewAudit()
	audit.Auditor = req.Auditor
	audit.ScheduledAt = req.ScheduledAt
	audit.Notes = req.Notes
	audit.BeforeCreate()

	if err := h.audits.Create(ctx, audit); err != nil {
		log.Error("cannot create audit", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(audit)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, audit, links...)
}

func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetAudit")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	audit, err := h.audits.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get audit", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(audit)
	aqm.RespondSuccess(w, audit, links...)
}

func (h *Handler) ListAudits(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListAudits")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	result, err := h.audits.List(ctx)
	if err != nil {
		log.Error("cannot list audits", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "audit")
}

func (h *Handler) CompleteAudit(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CompleteAudit")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req AuditCompleteRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if req.Score < 0 || req.Score > 100 {
		aqm.RespondError(w, http.StatusBadRequest, "Score must be between 0 and 100")
		return
	}

	audit, err := h.audits.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get audit", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	audit.Complete(req.Score)
	if req.Findings != nil {
		audit.Findings = req.Findings
	}
	if req.Notes != "" {
		audit.Notes = req.Notes
	}
	audit.BeforeUpdate()

	if err := h.audits.Save(ctx, audit); err != nil {
		log.Error("cannot save audit", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(audit)
	aqm.RespondSuccess(w, audit, links...)
}

func (h *Handler) DeleteAudit(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteAudit")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.audits.Delete(ctx, id); err != nil {
		log.Debug("cannot delete audit", "error", err)
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

func (h *Handler) publishViolationEvent(ctx context.Context, violation *Violation, eventType string) {
	if h.publisher == nil || violation == nil {
		return
	}

	evt := event.ViolationEvent{
		EventType:   eventType,
		OccurredAt:  time.Now().UTC(),
		ViolationID: violation.ID.String(),
		Location:    violation.Location,
		Severity:    violation.Severity,
	}
	if violation.ResolvedBy != nil {
		evt.ResolvedBy = violation.ResolvedBy.String()
	}

	eventBytes, _ := json.Marshal(evt)
	if err := h.publisher.Publish(ctx, event.FoodSafetyTopic, eventBytes); err != nil {
		h.logger.Errorf("Failed to publish violation event: %v", err)
	}
}
