package analytics

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
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

// Default reporting window when the caller does not pass one.
const defaultReportWindow = 24 * time.Hour

type Handler struct {
	metrics  MetricRepo
	orders   OrderAnalyticsRepo
	staff    StaffAnalyticsRepo
	reporter *Reporter
	logger   aqm.Logger
	config   *aqm.Config
	tlm      *telemetry.HTTP
}

func NewHandler(metrics MetricRepo, orders OrderAnalyticsRepo, staff StaffAnalyticsRepo, reporter *Reporter, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Handler{
		metrics:  metrics,
		orders:   orders,
		staff:    staff,
		reporter: reporter,
		logger:   logger,
		config:   config,
		tlm:      telemetry.NewHTTP(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analytics", func(r chi.Router) {
		r.Route("/metrics", func(r chi.Router) {
			r.Post("/", h.CreateMetric)
			r.Get("/", h.ListMetrics)
			r.Get("/{id}", h.GetMetric)
			r.Delete("/{id}", h.DeleteMetric)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.CreateOrderAnalytics)
			r.Get("/", h.ListOrderAnalytics)
			r.Get("/{id}", h.GetOrderAnalytics)
			r.Delete("/{id}", h.DeleteOrderAnalytics)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Post("/", h.CreateStaffAnalytics)
			r.Get("/", h.ListStaffAnalytics)
			r.Get("/{id}", h.GetStaffAnalytics)
			r.Delete("/{id}", h.DeleteStaffAnalytics)

			r.Get("/{id}/report", h.StaffReport)
		})

		r.Get("/report", h.KitchenReport)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

// Metric handlers

func (h *Handler) CreateMetric(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateMetric")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req MetricCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateMetricCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	metric := NewKitchenMetric()
	metric.Name = req.Name
	metric.StationID = req.StationID
	metric.Value = req.Value
	metric.Unit = req.Unit
	metric.Target = req.Target
	if req.RecordedAt != nil {
		metric.RecordedAt = *req.RecordedAt
	}
	metric.BeforeCreate()

	if err := h.metrics.Create(ctx, metric); err != nil {
		log.Error("cannot create metric", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(metric)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, metric, links...)
}

func (h *Handler) GetMetric(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetMetric")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	metric, err := h.metrics.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get metric", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(metric)
	aqm.RespondSuccess(w, metric, links...)
}

func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMetrics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*KitchenMetric
		err    error
	)

	if stationStr := r.URL.Query().Get("station"); stationStr != "" {
		stationID, parseErr := uuid.Parse(stationStr)
		if parseErr != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid station ID")
			return
		}
		result, err = h.metrics.ListByStation(ctx, stationID)
	} else if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, to, ok := h.parseWindow(w, fromStr, r.URL.Query().Get("to"))
		if !ok {
			return
		}
		result, err = h.metrics.ListBetween(ctx, from, to)
	} else {
		result, err = h.metrics.List(ctx)
	}

	if err != nil {
		log.Error("cannot list metrics", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "kitchenmetric")
}

func (h *Handler) DeleteMetric(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMetric")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.metrics.Delete(ctx, id); err != nil {
		log.Debug("cannot delete metric", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// Order analytics handlers

func (h *Handler) CreateOrderAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateOrderAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req OrderAnalyticsCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateOrderAnalyticsCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	stats := NewOrderAnalytics()
	stats.PeriodStart = req.PeriodStart
	stats.PeriodEnd = req.PeriodEnd
	stats.TotalOrders = req.TotalOrders
	stats.CompletedOrders = req.CompletedOrders
	stats.CancelledOrders = req.CancelledOrders
	stats.AvgPrepTimeSec = req.AvgPrepTimeSec
	stats.Revenue = money.FromFloat(req.Revenue)
	stats.BeforeCreate()

	if err := h.orders.Create(ctx, stats); err != nil {
		log.Error("cannot create order analytics record", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(stats)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, stats, links...)
}

func (h *Handler) GetOrderAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetOrderAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	stats, err := h.orders.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get order analytics record", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(stats)
	aqm.RespondSuccess(w, stats, links...)
}

func (h *Handler) ListOrderAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListOrderAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*OrderAnalytics
		err    error
	)

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, to, ok := h.parseWindow(w, fromStr, r.URL.Query().Get("to"))
		if !ok {
			return
		}
		result, err = h.orders.ListBetween(ctx, from, to)
	} else {
		result, err = h.orders.List(ctx)
	}

	if err != nil {
		log.Error("cannot list order analytics records", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "orderanalytics")
}

func (h *Handler) DeleteOrderAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteOrderAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.orders.Delete(ctx, id); err != nil {
		log.Debug("cannot delete order analytics record", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// Staff analytics handlers

func (h *Handler) CreateStaffAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateStaffAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req StaffAnalyticsCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateStaffAnalyticsCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	stats := NewStaffPerformanceAnalytics()
	stats.UserID = req.UserID
	stats.PeriodStart = req.PeriodStart
	stats.PeriodEnd = req.PeriodEnd
	stats.OrdersHandled = req.OrdersHandled
	stats.AvgServiceTimeSec = req.AvgServiceTimeSec
	stats.ErrorCount = req.ErrorCount
	stats.BeforeCreate()

	if err := h.staff.Create(ctx, stats); err != nil {
		log.Error("cannot create staff analytics record", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(stats)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, stats, links...)
}

func (h *Handler) GetStaffAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetStaffAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	stats, err := h.staff.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get staff analytics record", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(stats)
	aqm.RespondSuccess(w, stats, links...)
}

func (h *Handler) ListStaffAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListStaffAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var (
		result []*StaffPerformanceAnalytics
		err    error
	)

	if userStr := r.URL.Query().Get("user"); userStr != "" {
		userID, parseErr := uuid.Parse(userStr)
		if parseErr != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}
		result, err = h.staff.ListByUser(ctx, userID)
	} else if role := r.URL.Query().Get("role"); role != "" {
		result, err = h.staff.ListByRole(ctx, role)
	} else {
		result, err = h.staff.List(ctx)
	}

	if err != nil {
		log.Error("cannot list staff analytics records", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "staffanalytics")
}

func (h *Handler) DeleteStaffAnalytics(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteStaffAnalytics")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.staff.Delete(ctx, id); err != nil {
		log.Debug("cannot delete staff analytics record", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, map[string]interface{}{"deleted": id.String()}, nil)
}

// Reports

func (h *Handler) KitchenReport(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.KitchenReport")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	to := time.Now()
	from := to.Add(-defaultReportWindow)
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		var ok bool
		from, to, ok = h.parseWindow(w, fromStr, r.URL.Query().Get("to"))
		if !ok {
			return
		}
	}

	tableCount := 0
	if tablesStr := r.URL.Query().Get("tables"); tablesStr != "" {
		parsed, parseErr := strconv.Atoi(tablesStr)
		if parseErr != nil || parsed < 0 {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid tables parameter")
			return
		}
		tableCount = parsed
	}

	report, err := h.reporter.KitchenReport(ctx, from, to, tableCount)
	if err != nil {
		log.Error("cannot build kitchen report", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, report, nil)
}

func (h *Handler) StaffReport(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.StaffReport")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	report, err := h.reporter.StaffReport(ctx, id)
	if err != nil {
		log.Debug("cannot build staff report", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.Respond(w, http.StatusOK, report, nil)
}

func (h *Handler) parseWindow(w http.ResponseWriter, fromStr, toStr string) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid from parameter, expected RFC3339")
		return time.Time{}, time.Time{}, false
	}

	to := time.Now()
	if toStr != "" {
		to, err = time.Parse(time.RFC3339, toStr)
		if err != nil {
			aqm.RespondError(w, http.StatusBadRequest, "Invalid to parameter, expected RFC3339")
			return time.Time{}, time.Time{}, false
		}
	}

	return from, to, true
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
