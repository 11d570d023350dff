package projects

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/platform/httpx"
)

// Handler implements project CRUD, including the nested subtask payloads.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) ownerID(r *http.Request) int64 {
	id, _ := auth.IdentityFromContext(r.Context())
	return id.ID
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Title is required")
		return
	}

	id, err := h.service.Create(r.Context(), h.ownerID(r), req)
	if err != nil {
		h.logger.Error("create project", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.JSON(w, http.StatusCreated, CreateResponse{InsertedID: id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), h.ownerID(r))
	if err != nil {
		h.logger.Error("list projects", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := h.service.Get(r.Context(), id, h.ownerID(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		h.logger.Error("get project", slog.Any("error", err), slog.Int64("id", id))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req ProjectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Title is required")
		return
	}

	if err := h.service.Update(r.Context(), id, h.ownerID(r), req); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Project not found or no changes made")
			return
		}
		h.logger.Error("update project", slog.Any("error", err), slog.Int64("id", id))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.JSON(w, http.StatusOK, UpdateResponse{Updated: true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := h.service.Delete(r.Context(), id, h.ownerID(r)); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		h.logger.Error("delete project", slog.Any("error", err), slog.Int64("id", id))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	httpx.JSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}
