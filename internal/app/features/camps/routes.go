package camps

import (
	"github.com/dalemusser/campanion/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the camp API under the base path (typically "/camps").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// Public: the service applies the visibility policy per viewer.
	r.Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireAdmin)

		pr.Get("/mine", h.ServeMine)
		pr.Get("/started", h.ServeStarted)
		pr.Post("/archive-started", h.HandleArchiveStarted)

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleEdit)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/copy", h.HandleCopy)
		pr.Post("/{id}/archive", h.HandleArchive)
	})

	r.Get("/{id}", h.ServeDetail)

	return r
}
