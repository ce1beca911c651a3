package authz

import (
	"net/http"

	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	"github.com/dalemusser/campanion/internal/app/system/auth"
)

// Viewer converts the request's signed-in user into the identity the camp
// policies take. Requests without a user get the anonymous viewer.
func Viewer(r *http.Request) camppolicy.Viewer {
	u, ok := auth.CurrentUser(r)
	if !ok || u.ID == "" {
		return camppolicy.Anonymous()
	}
	return camppolicy.Viewer{UID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	u, ok := auth.CurrentUser(r)
	return ok && u.IsAdmin
}

// UserID returns the signed-in user's uid, or "".
func UserID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.ID
	}
	return ""
}
