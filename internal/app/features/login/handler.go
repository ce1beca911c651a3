// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"time"

	userstore "github.com/dalemusser/campanion/internal/app/store/users"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/auth"
	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/dalemusser/campanion/internal/app/system/normalize"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Users      userstore.Store
	Now        func() time.Time
}

func NewHandler(sessionMgr *auth.SessionManager, users userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, SessionMgr: sessionMgr, Users: users, Now: time.Now}
}

type loginRequest struct {
	IDToken string `json:"idToken"`
}

type meResponse struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// HandleLogin handles POST /login. The client signs in with the identity
// provider and posts the resulting ID token; on success the server sets its
// session cookie and returns the user.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	v := h.SessionMgr.Verifier()
	if v == nil {
		httpjson.Error(w, http.StatusServiceUnavailable, "sign-in is not configured")
		return
	}

	var req loginRequest
	if err := httpjson.Read(w, r, &req); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	if req.IDToken == "" {
		httpjson.WriteError(w, apperr.Invalid("idToken", "ID token is required."))
		return
	}

	id, err := v.VerifyIDToken(r.Context(), req.IDToken)
	if err != nil {
		h.Log.Info("login: token rejected", zap.Error(err))
		httpjson.WriteError(w, apperr.ErrUnauthenticated)
		return
	}
	id.Email = normalize.Email(id.Email)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "users.touch_login")
	defer cancel()
	u, err := h.Users.TouchLogin(ctx, id.UID, id.Email, h.Now().UTC())
	if err != nil {
		h.Log.Error("login: record user", zap.String("uid", id.UID), zap.Error(err))
		httpjson.WriteError(w, apperr.Collaborator("users.touch_login", err))
		return
	}

	if err := h.SessionMgr.SignIn(w, r, id); err != nil {
		h.Log.Error("login: save session", zap.String("uid", id.UID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Log.Info("user signed in", zap.String("uid", u.ID), zap.Bool("is_admin", u.IsAdmin))
	httpjson.Write(w, http.StatusOK, meResponse{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin})
}

// ServeMe handles GET /me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.WriteError(w, apperr.ErrUnauthenticated)
		return
	}
	httpjson.Write(w, http.StatusOK, meResponse{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin})
}
