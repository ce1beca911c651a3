package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	"github.com/dalemusser/campanion/internal/app/system/auth"
	"github.com/dalemusser/campanion/internal/app/system/authz"
)

func TestViewer(t *testing.T) {
	tests := []struct {
		name string
		user *auth.SessionUser
		want camppolicy.Viewer
	}{
		{"anonymous", nil, camppolicy.Viewer{}},
		{"empty id", &auth.SessionUser{Email: "x@example.com"}, camppolicy.Viewer{}},
		{"user", &auth.SessionUser{ID: "u1", Email: "u@example.com"}, camppolicy.Viewer{UID: "u1", Email: "u@example.com"}},
		{"admin", &auth.SessionUser{ID: "a1", IsAdmin: true}, camppolicy.Viewer{UID: "a1", IsAdmin: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.user != nil {
				req = auth.WithTestUser(req, tt.user)
			}
			if got := authz.Viewer(req); got != tt.want {
				t.Errorf("Viewer = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	if authz.IsAdmin(req) {
		t.Error("anonymous must not be admin")
	}
	if authz.UserID(req) != "" {
		t.Error("anonymous has no uid")
	}

	req = auth.WithTestUser(req, &auth.SessionUser{ID: "a1", IsAdmin: true})
	if !authz.IsAdmin(req) {
		t.Error("expected admin")
	}
	if authz.UserID(req) != "a1" {
		t.Errorf("UserID = %q", authz.UserID(req))
	}
}
