// Package prefill serves the "import from a web page" step of the camp form.
package prefill

import (
	"net/http"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/extract"
	"github.com/dalemusser/campanion/internal/app/system/auth"
	"github.com/dalemusser/campanion/internal/app/system/authz"
	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Svc *extract.Service
	Log *zap.Logger
}

func NewHandler(svc *extract.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

type prefillRequest struct {
	URL  string                `json:"url"`
	Form campservice.CampInput `json:"form"`
}

// HandlePrefill handles POST /extract. Extraction trouble is reported as
// warnings in a 200 response; only a malformed body is rejected.
func (h *Handler) HandlePrefill(w http.ResponseWriter, r *http.Request) {
	var req prefillRequest
	if err := httpjson.Read(w, r, &req); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	res := h.Svc.Prefill(r.Context(), req.URL, req.Form)
	h.Log.Info("prefill",
		zap.String("actor_id", authz.UserID(r)),
		zap.String("url", req.URL),
		zap.Bool("extracted", res.Extracted),
		zap.Int("warnings", len(res.Warnings)))
	httpjson.Write(w, http.StatusOK, res)
}

// ServeStatus handles GET /extract and tells the form whether to offer import.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]bool{"enabled": h.Svc.Enabled()})
}

// Routes mounts the prefill API (typically at "/extract"). Admins only;
// limit, when given, runs after the admin check so it can key on the user.
func Routes(h *Handler, sm *auth.SessionManager, limit ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireAdmin)
	r.Use(limit...)
	r.Get("/", h.ServeStatus)
	r.Post("/", h.HandlePrefill)
	return r
}
