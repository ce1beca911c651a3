// internal/app/features/login/routes.go
package login

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts POST / for sign-in. limit, when given, throttles attempts.
func Routes(h *Handler, limit ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(limit...)
	r.Post("/", h.HandleLogin)
	return r
}
