package users

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskforge/taskforge/internal/platform/httpx"
	"github.com/taskforge/taskforge/internal/session"
	"github.com/taskforge/taskforge/internal/token"
)

// Handler wires the account endpoints: registration, login, disconnect.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	tokens   *token.Service
	registry session.Registry
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, tokens *token.Service, registry session.Registry) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		tokens:   tokens,
		registry: registry,
		validate: validator.New(),
	}
}

// MountRoutes registers account routes. These stay outside the auth gate:
// registration and login obviously need no key, and disconnect takes the key
// it is revoking as its argument.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Register)
	r.Post("/login", h.Login)
	r.Get("/disconnect", h.Disconnect)
	// The original frontend calls the misspelled path.
	r.Get("/disconect", h.Disconnect)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	id, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			httpx.Error(w, http.StatusBadRequest, ErrDuplicateEmail.Error())
			return
		}
		h.logger.Error("register user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.JSON(w, http.StatusCreated, RegisterResponse{Inserted: id})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.Error(w, http.StatusUnauthorized, ErrInvalidCredentials.Error())
			return
		}
		h.logger.Error("authenticate user", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	apiKey, err := h.tokens.Issue(token.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		h.logger.Error("issue api key", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	if err := h.registry.Activate(r.Context(), apiKey); err != nil {
		h.logger.Error("activate api key", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	httpx.JSON(w, http.StatusOK, LoginResponse{APIKey: apiKey, ID: user.ID, Email: user.Email})
}

func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	apiKey := r.URL.Query().Get("apiKey")
	removed, err := h.registry.Revoke(r.Context(), apiKey)
	if err != nil {
		h.logger.Error("revoke api key", slog.Any("error", err))
		httpx.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !removed {
		httpx.Error(w, http.StatusBadRequest, "user not found")
		return
	}
	httpx.JSON(w, http.StatusOK, DisconnectResponse{Removed: true})
}
