package organizers

import (
	"github.com/dalemusser/campanion/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the organizer API under the base path (typically "/organizers").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeDetail)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireAdmin)
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})
	return r
}
