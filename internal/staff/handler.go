package staff

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
)

const MaxBodyBytes = 1 << 20

type Handler struct {
	repo   UserRepo
	logger aqm.Logger
	config *aqm.Config
	tlm    *telemetry.HTTP
}

func NewHandler(repo UserRepo, config *aqm.Config, logger aqm.Logger) *Handler {
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
	r.Route("/staff", func(r chi.Router) {
		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)
		r.Get("/{id}", h.GetUser)
		r.Patch("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CreateUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	var req UserCreateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	validationErrors := ValidateUserCreate(ctx, req)
	if len(validationErrors) > 0 {
		log.Debug("validation failed", "errors", validationErrors)
		aqm.RespondError(w, http.StatusBadRequest, "Validation failed")
		return
	}

	user := NewUser()
	user.Email = req.Email
	user.Name = req.Name
	user.Role = req.Role
	user.Permissions = req.Permissions
	user.BeforeCreate()

	if err := h.repo.Create(ctx, user); err != nil {
		log.Error("cannot create user", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(user)
	w.WriteHeader(http.StatusCreated)
	aqm.RespondSuccess(w, user, links...)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	user, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get user", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(user)
	aqm.RespondSuccess(w, user, links...)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListUsers")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	if email := r.URL.Query().Get("email"); email != "" {
		user, err := h.repo.GetByEmail(ctx, email)
		if err != nil {
			log.Debug("cannot get user by email", "error", err)
			aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
			return
		}
		aqm.RespondCollection(w, []*User{user}, "user")
		return
	}

	var (
		result []*User
		err    error
	)

	if role := r.URL.Query().Get("role"); role != "" {
		if !ValidRole(role) {
			aqm.RespondError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		result, err = h.repo.ListByRole(ctx, role)
	} else {
		result, err = h.repo.List(ctx)
	}

	if err != nil {
		log.Error("cannot list users", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	aqm.RespondCollection(w, result, "user")
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req UserUpdateRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	user, err := h.repo.Get(ctx, id)
	if err != nil {
		log.Debug("cannot get user", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		if !ValidRole(req.Role) {
			aqm.RespondError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		user.Role = req.Role
	}
	if req.Permissions != nil {
		user.Permissions = req.Permissions
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	user.BeforeUpdate()

	if err := h.repo.Save(ctx, user); err != nil {
		log.Error("cannot update user", "error", err)
		aqm.RespondError(w, fail.HTTPStatus(err), fail.Message(err))
		return
	}

	links := aqm.RESTfulLinksFor(user)
	aqm.RespondSuccess(w, user, links...)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteUser")
	defer finish()
	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		log.Debug("cannot delete user", "error", err)
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
