package camps

import (
	"net/http"

	"github.com/dalemusser/campanion/internal/app/system/authz"
	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /camps: active camps, soonest first by default.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q, err := h.listQuery(r)
	if err != nil {
		h.fail(w, r, "list camps", err)
		return
	}
	l, err := h.Svc.ListPublic(r.Context(), authz.Viewer(r), q)
	if err != nil {
		h.fail(w, r, "list camps", err)
		return
	}
	httpjson.Write(w, http.StatusOK, l)
}

// ServeMine handles GET /camps/mine: the admin's own camps in every status.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	q, err := h.listQuery(r)
	if err != nil {
		h.fail(w, r, "list my camps", err)
		return
	}
	l, err := h.Svc.ListMine(r.Context(), authz.Viewer(r), q)
	if err != nil {
		h.fail(w, r, "list my camps", err)
		return
	}
	httpjson.Write(w, http.StatusOK, l)
}

// ServeStarted handles GET /camps/started: active camps that have begun.
func (h *Handler) ServeStarted(w http.ResponseWriter, r *http.Request) {
	camps, err := h.Svc.ListStartedActive(r.Context(), authz.Viewer(r))
	if err != nil {
		h.fail(w, r, "list started camps", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"items": camps})
}

// ServeDetail handles GET /camps/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Get(r.Context(), authz.Viewer(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "get camp", err)
		return
	}
	httpjson.Write(w, http.StatusOK, v)
}
