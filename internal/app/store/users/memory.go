package userstore

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
)

type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemory() *MemoryStore {
	return &MemoryStore{users: map[string]models.User{}}
}

func (s *MemoryStore) Get(ctx context.Context, uid string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[uid]
	if !ok {
		return models.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) TouchLogin(ctx context.Context, uid, email string, at time.Time) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	if !ok {
		u = models.User{ID: uid, CreatedAt: at}
	}
	u.Email = email
	t := at
	u.LastLoginAt = &t
	s.users[uid] = u
	return u, nil
}

func (s *MemoryStore) SetAdmin(ctx context.Context, uid string, admin bool, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[uid]
	if !ok {
		u = models.User{ID: uid, CreatedAt: at}
	}
	u.IsAdmin = admin
	s.users[uid] = u
	return nil
}

func (s *MemoryStore) ListAdmins(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var out []models.User
	for _, u := range s.users {
		if u.IsAdmin {
			out = append(out, u)
		}
	}
	s.mu.RUnlock()
	sortByEmail(out)
	return out, nil
}
