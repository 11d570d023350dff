package subtasks

import "github.com/go-chi/chi/v5"

// MountRoutes registers subtask routes relative to a project:
// /projects/{projectId}/subtasks.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/{projectId}/subtasks", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
