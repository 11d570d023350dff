package subtasks

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

// Handler implements subtask CRUD under /projects/{projectId}/subtasks.
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

func urlID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func (h *Handler) respondErr(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrProjectNotFound):
		httpx.Error(w, http.StatusNotFound, ErrProjectNotFound.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectId")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req SubtaskRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Task is required")
		return
	}

	id, err := h.service.Create(r.Context(), projectID, h.ownerID(r), req.Task)
	if err != nil {
		h.respondErr(w, err, "create subtask")
		return
	}
	httpx.JSON(w, http.StatusCreated, CreateResponse{InsertedID: id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectId")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	list, err := h.service.List(r.Context(), projectID, h.ownerID(r))
	if err != nil {
		h.respondErr(w, err, "list subtasks")
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectId")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid subtask id")
		return
	}

	st, err := h.service.Get(r.Context(), id, projectID, h.ownerID(r))
	if err != nil {
		h.respondErr(w, err, "get subtask")
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectId")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid subtask id")
		return
	}

	var req SubtaskRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Task is required")
		return
	}

	if err := h.service.Update(r.Context(), id, projectID, h.ownerID(r), req); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Subtask not found or no changes made")
			return
		}
		h.respondErr(w, err, "update subtask")
		return
	}
	httpx.JSON(w, http.StatusOK, UpdateResponse{Updated: true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectId")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}
	id, err := urlID(r, "id")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid subtask id")
		return
	}

	if err := h.service.Delete(r.Context(), id, projectID, h.ownerID(r)); err != nil {
		h.respondErr(w, err, "delete subtask")
		return
	}
	httpx.JSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}
