// Package userstore records who has signed in and which of them are admins.
// Users are keyed by the identity provider uid.
package userstore

import (
	"context"
	"sort"
	"time"

	"github.com/dalemusser/campanion/internal/domain/models"
)

const Collection = "users"

// Store is the user persistence contract. Get returns apperr.ErrNotFound for
// an unknown uid.
type Store interface {
	Get(ctx context.Context, uid string) (models.User, error)
	// TouchLogin records a sign-in, creating the user as a non-admin on
	// first sight. It never changes IsAdmin.
	TouchLogin(ctx context.Context, uid, email string, at time.Time) (models.User, error)
	// SetAdmin grants or revokes the admin flag, creating the record if
	// the uid has never signed in.
	SetAdmin(ctx context.Context, uid string, admin bool, at time.Time) error
	// ListAdmins returns admins ordered by email.
	ListAdmins(ctx context.Context) ([]models.User, error)
}

func sortByEmail(users []models.User) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Email != users[j].Email {
			return users[i].Email < users[j].Email
		}
		return users[i].ID < users[j].ID
	})
}
