package projects

import "github.com/go-chi/chi/v5"

// MountRoutes registers project CRUD routes. Subtask sub-routes are
// mounted separately under /{projectId}/subtasks by the subtasks handler.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}
