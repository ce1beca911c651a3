package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

type fakeVerifier map[string]Identity

func (f fakeVerifier) VerifyIDToken(_ context.Context, tok string) (Identity, error) {
	id, ok := f[tok]
	if !ok {
		return Identity{}, errors.New("bad token")
	}
	return id, nil
}

type fakeFetcher map[string]*SessionUser

func (f fakeFetcher) FetchUser(_ context.Context, uid string) *SessionUser { return f[uid] }

func newManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testKey, "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return sm
}

// echo records the resolved user.
func echo(got **SessionUser) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r); ok {
			*got = u
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestLoadSessionUser_Anonymous(t *testing.T) {
	sm := newManager(t)
	var got *SessionUser
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echo(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got != nil {
		t.Errorf("expected anonymous, got %+v", got)
	}
}

func TestLoadSessionUser_Bearer(t *testing.T) {
	sm := newManager(t)
	sm.SetVerifier(fakeVerifier{"good": {UID: "u1", Email: "a@example.com"}})
	sm.SetUserFetcher(fakeFetcher{"u1": {ID: "u1", IsAdmin: true}})

	var got *SessionUser
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echo(&got)).ServeHTTP(rec, req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != "u1" || got.Email != "a@example.com" || !got.IsAdmin {
		t.Errorf("user = %+v", got)
	}
}

func TestLoadSessionUser_BadBearer(t *testing.T) {
	sm := newManager(t)
	sm.SetVerifier(fakeVerifier{})

	var got *SessionUser
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echo(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if got != nil {
		t.Error("handler should not run")
	}
}

func TestLoadSessionUser_NoVerifierRejectsBearer(t *testing.T) {
	sm := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()
	var got *SessionUser
	sm.LoadSessionUser(echo(&got)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSignInRoundTrip(t *testing.T) {
	sm := newManager(t)
	sm.SetUserFetcher(fakeFetcher{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := sm.SignIn(rec, req, Identity{UID: "u2", Email: "b@example.com"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	var got *SessionUser
	sm.LoadSessionUser(echo(&got)).ServeHTTP(httptest.NewRecorder(), next)

	if got == nil || got.ID != "u2" || got.Email != "b@example.com" {
		t.Fatalf("user = %+v", got)
	}
	if got.IsAdmin {
		t.Error("user without a stored record must not be admin")
	}
}

func TestSignOut_ExpiresCookie(t *testing.T) {
	sm := newManager(t)
	rec := httptest.NewRecorder()
	if err := sm.SignOut(rec, httptest.NewRequest(http.MethodPost, "/logout", nil)); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge >= 0 {
		t.Errorf("expected expired cookie, got %+v", cookies)
	}
}

func TestRequireSignedIn(t *testing.T) {
	sm := newManager(t)
	h := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, WithTestUser(httptest.NewRequest(http.MethodGet, "/", nil), &SessionUser{ID: "u"}))
	if rec.Code != http.StatusOK {
		t.Errorf("signed in: status = %d, want 200", rec.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	sm := newManager(t)
	h := sm.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name string
		user *SessionUser
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"user", &SessionUser{ID: "u"}, http.StatusForbidden},
		{"admin", &SessionUser{ID: "a", IsAdmin: true}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = WithTestUser(req, tt.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"", "", false},
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		got, ok := bearerToken(r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bearerToken(%q) = %q, %v; want %q, %v", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadSessionUser_TamperedCookie(t *testing.T) {
	sm := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "not-a-valid-cookie"})

	var got *SessionUser
	rec := httptest.NewRecorder()
	sm.LoadSessionUser(echo(&got)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got != nil {
		t.Errorf("tampered cookie must be anonymous, got %+v", got)
	}
}
