package camps

import (
	"net/http"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/system/authz"
	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
)

// HandleCreate handles POST /camps.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in campservice.CampInput
	if err := httpjson.Read(w, r, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	v, err := h.Svc.Create(r.Context(), authz.Viewer(r), in)
	if err != nil {
		h.fail(w, r, "create camp", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, v)
}

// HandleEdit handles PUT /camps/{id}.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	var in campservice.CampInput
	if err := httpjson.Read(w, r, &in); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	v, err := h.Svc.Edit(r.Context(), authz.Viewer(r), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, "edit camp", err)
		return
	}
	httpjson.Write(w, http.StatusOK, v)
}

// HandleDelete handles DELETE /camps/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), authz.Viewer(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "delete camp", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCopy handles POST /camps/{id}/copy.
func (h *Handler) HandleCopy(w http.ResponseWriter, r *http.Request) {
	v, err := h.Svc.Copy(r.Context(), authz.Viewer(r), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "copy camp", err)
		return
	}
	httpjson.Write(w, http.StatusCreated, v)
}

// HandleArchive handles POST /camps/{id}/archive.
func (h *Handler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Archive(r.Context(), authz.Viewer(r), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "archive camp", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleArchiveStarted handles POST /camps/archive-started. Partial failure
// still answers 200; the report lists what failed.
func (h *Handler) HandleArchiveStarted(w http.ResponseWriter, r *http.Request) {
	report, err := h.Svc.BulkArchiveStarted(r.Context(), authz.Viewer(r))
	if err != nil {
		h.fail(w, r, "archive started camps", err)
		return
	}
	httpjson.Write(w, http.StatusOK, report)
}
