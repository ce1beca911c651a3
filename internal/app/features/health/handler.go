package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger checks that the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB      Pinger
	Backend string
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. A nil pinger (the in-memory
// backend) always reports connected.
func NewHandler(db Pinger, backend string, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Backend: backend, Log: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Backend  string `json:"backend"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"mongo", "database":"connected" }
//
// On store failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Backend: h.Backend, Database: "connected"}
	if h.DB == nil {
		httpjson.Write(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		h.Log.Error("health-check: ping failed", zap.String("backend", h.Backend), zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		httpjson.Write(w, http.StatusServiceUnavailable, resp)
		return
	}
	httpjson.Write(w, http.StatusOK, resp)
}
