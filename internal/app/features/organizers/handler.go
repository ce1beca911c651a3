package organizers

import (
	"net/http"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/system/authz"
	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Svc *campservice.Service
	Log *zap.Logger
}

func NewHandler(svc *campservice.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpjson.StatusFor(err) >= http.StatusInternalServerError {
		h.Log.Error(op+" failed", zap.String("actor_id", authz.UserID(r)), zap.Error(err))
	}
	httpjson.WriteError(w, err)
}

// ServeList handles GET /organizers, sorted by name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.Svc.ListOrganizers(r.Context())
	if err != nil {
		h.fail(w, r, "list organizers", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"items": orgs})
}

func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	o, err := h.Svc.GetOrganizer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get organizer", err)
		return
	}
	httpjson.Write(w, http.StatusOK, o)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in campservice.OrganizerInput
	if err := httpjson.Read(w, r, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	o, err := h.Svc.CreateOrganizer(r.Context(), authz.Viewer(r), in)
	if err != nil {
		h.fail(w, r, "create organizer", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, o)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in campservice.OrganizerInput
	if err := httpjson.Read(w, r, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	o, err := h.Svc.UpdateOrganizer(r.Context(), authz.Viewer(r), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, "update organizer", err)
		return
	}
	httpjson.Write(w, http.StatusOK, o)
}

// HandleDelete removes the organizer. Camps keep their snapshot of it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteOrganizer(r.Context(), authz.Viewer(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete organizer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
