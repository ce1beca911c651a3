package userstore

import (
	"context"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/auth"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Fetcher implements auth.UserFetcher so the admin flag is re-read on every
// request rather than trusted from the session cookie.
type Fetcher struct {
	store Store
	log   *zap.Logger
}

func NewFetcher(store Store, log *zap.Logger) *Fetcher {
	return &Fetcher{store: store, log: log}
}

// FetchUser returns nil when the uid has no record or the lookup fails.
func (f *Fetcher) FetchUser(ctx context.Context, uid string) *auth.SessionUser {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	u, err := f.store.Get(ctx, uid)
	if err != nil {
		if !apperr.IsNotFound(err) {
			f.log.Warn("user lookup failed", zap.String("uid", uid), zap.Error(err))
		}
		return nil
	}
	return &auth.SessionUser{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}
