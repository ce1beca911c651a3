package health

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts GET / for the health check.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
