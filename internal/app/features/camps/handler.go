package camps

import (
	"net/http"
	"time"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/system/authz"
	"github.com/dalemusser/campanion/internal/app/system/campfilter"
	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/dalemusser/campanion/internal/app/system/paging"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ParamSort selects the listing order: lifecycle, newest or soonest.
const ParamSort = "sort"

type Handler struct {
	Svc *campservice.Service
	Loc *time.Location
	Log *zap.Logger
}

func NewHandler(svc *campservice.Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Loc: svc.Location(), Log: logger}
}

// listQuery reads filters, sort and page. A changed filter key resets the
// page to 1.
func (h *Handler) listQuery(r *http.Request) (campservice.ListQuery, error) {
	crit, err := campfilter.ParseCriteria(r.URL.Query(), h.Loc)
	if err != nil {
		return campservice.ListQuery{}, err
	}
	q := campservice.ListQuery{
		Criteria: crit,
		Page:     paging.ResolvePage(paging.ParsePage(r), paging.ParseFilterKey(r), crit.Key()),
	}
	if s := query.Get(r, ParamSort); s != "" {
		q.Sort = campfilter.ParseSort(s, campfilter.SortLifecycle)
		q.HasSort = true
	}
	return q, nil
}

// fail logs unexpected errors and writes the mapped response.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if httpjson.StatusFor(err) >= http.StatusInternalServerError {
		h.Log.Error(op+" failed",
			zap.String("actor_id", authz.UserID(r)),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	httpjson.WriteError(w, err)
}
