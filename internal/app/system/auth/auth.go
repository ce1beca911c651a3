// Package auth resolves the signed-in user for each request.
//
// Two credentials are accepted: a signed session cookie (gorilla/sessions)
// set by POST /login, and a Firebase ID token sent as
// "Authorization: Bearer <token>". Either way only the uid and email are
// trusted from the credential; IsAdmin is re-read from the users collection
// on every request through a UserFetcher.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/httpjson"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	uidKey   = "uid"
	emailKey = "email"
)

// SessionUser is what we inject into r.Context().
type SessionUser struct {
	ID      string
	Email   string
	IsAdmin bool
}

// Identity is what a verified credential proves.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier checks an identity-provider ID token.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (Identity, error)
}

// UserFetcher loads the stored user for a uid. It returns nil when the user
// has no record or the lookup fails; the request then continues as a
// non-admin.
type UserFetcher interface {
	FetchUser(ctx context.Context, uid string) *SessionUser
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok && u != nil
}

// WithTestUser injects u directly, bypassing credentials. For tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// SessionManager owns the cookie store and the collaborators used to
// resolve users.
type SessionManager struct {
	store    *sessions.CookieStore
	name     string
	verifier TokenVerifier
	fetcher  UserFetcher
	log      *zap.Logger
}

// NewSessionManager builds the cookie store. In production (secure=true)
// cookies are Secure + SameSite=None; over plain http in development use
// secure=false so browsers accept them.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "campanion-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetVerifier enables bearer-token authentication.
func (sm *SessionManager) SetVerifier(v TokenVerifier) { sm.verifier = v }

// Verifier returns the configured token verifier, or nil.
func (sm *SessionManager) Verifier() TokenVerifier { return sm.verifier }

// SetUserFetcher sets the source of fresh user data.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetcher = f }

// LoadSessionUser injects the user into context when the request carries a
// valid session or bearer token. A bad bearer token is rejected with 401;
// a missing or unreadable session cookie is treated as anonymous.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok, ok := bearerToken(r); ok {
			if sm.verifier == nil {
				httpjson.WriteError(w, fmt.Errorf("bearer tokens not accepted: %w", apperr.ErrUnauthenticated))
				return
			}
			id, err := sm.verifier.VerifyIDToken(r.Context(), tok)
			if err != nil {
				sm.log.Debug("bearer token rejected", zap.Error(err))
				httpjson.WriteError(w, fmt.Errorf("invalid token: %w", apperr.ErrUnauthenticated))
				return
			}
			next.ServeHTTP(w, withUser(r, sm.resolve(r.Context(), id)))
			return
		}

		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			var cerr securecookie.Error
			if errors.As(err, &cerr) && cerr.IsDecode() {
				sm.log.Debug("session cookie rejected", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}
		uid, _ := sess.Values[uidKey].(string)
		if uid == "" {
			next.ServeHTTP(w, r)
			return
		}
		email, _ := sess.Values[emailKey].(string)
		next.ServeHTTP(w, withUser(r, sm.resolve(r.Context(), Identity{UID: uid, Email: email})))
	})
}

func (sm *SessionManager) resolve(ctx context.Context, id Identity) *SessionUser {
	u := &SessionUser{ID: id.UID, Email: id.Email}
	if sm.fetcher == nil {
		return u
	}
	if stored := sm.fetcher.FetchUser(ctx, id.UID); stored != nil {
		u.IsAdmin = stored.IsAdmin
		if u.Email == "" {
			u.Email = stored.Email
		}
	}
	return u
}

// SignIn stores the identity in the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, id Identity) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[uidKey] = id.UID
	sess.Values[emailKey] = id.Email
	return sess.Save(r, w)
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// RequireSignedIn rejects anonymous requests with 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.WriteError(w, apperr.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func (sm *SessionManager) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			httpjson.WriteError(w, apperr.ErrUnauthenticated)
			return
		}
		if !u.IsAdmin {
			httpjson.WriteError(w, fmt.Errorf("admin only: %w", apperr.ErrPermissionDenied))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) < len("bearer ") || !strings.EqualFold(h[:len("bearer ")], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[len("bearer "):])
	return tok, tok != ""
}
