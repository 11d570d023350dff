package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/projects"
	"github.com/taskforge/taskforge/internal/subtasks"
	"github.com/taskforge/taskforge/internal/tasks"
	"github.com/taskforge/taskforge/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthMiddleware  auth.Middleware
	UsersHandler    *users.Handler
	TasksHandler    *tasks.Handler
	ProjectsHandler *projects.Handler
	SubtasksHandler *subtasks.Handler
}

// NewRouter constructs the chi.Router with TaskForge defaults. The account
// routes stay open; tasks, projects and their subtask sub-routes sit behind
// the API key gate.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/users", params.UsersHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireAPIKey)
		r.Route("/tasks", params.TasksHandler.MountRoutes)
		r.Route("/projects", func(r chi.Router) {
			params.ProjectsHandler.MountRoutes(r)
			params.SubtasksHandler.MountRoutes(r)
		})
	})

	return r
}
