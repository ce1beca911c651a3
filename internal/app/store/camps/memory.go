package campstore

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	"github.com/google/uuid"
)

// MemoryStore keeps camps in a map. Safe for concurrent use. Values are
// deep-copied on the way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	camps map[string]models.Camp
}

func NewMemory() *MemoryStore {
	return &MemoryStore{camps: map[string]models.Camp{}}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.Camp, error) {
	if err := ctx.Err(); err != nil {
		return models.Camp{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.camps[id]
	if !ok {
		return models.Camp{}, apperr.ErrNotFound
	}
	return c.Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context, q Query) ([]models.Camp, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var out []models.Camp
	for _, c := range s.camps {
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		if q.CreatorID != "" && c.CreatorID != q.CreatorID {
			continue
		}
		out = append(out, c.Clone())
	}
	s.mu.RUnlock()
	sortNewest(out)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, c models.Camp) (models.Camp, error) {
	if err := ctx.Err(); err != nil {
		return models.Camp{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.camps[c.ID] = c.Clone()
	return c, nil
}

func (s *MemoryStore) Update(ctx context.Context, c models.Camp) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.camps[c.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	next := c.Clone()
	next.CreatorID = cur.CreatorID
	next.CreationMode = cur.CreationMode
	next.CreatedAt = cur.CreatedAt
	s.camps[c.ID] = next
	return nil
}

func (s *MemoryStore) SetStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.camps[id]
	if !ok {
		return apperr.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	s.camps[id] = c
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.camps[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.camps, id)
	return nil
}

func (s *MemoryStore) BatchSetStatus(ctx context.Context, ids []string, status string) []Outcome {
	out := make([]Outcome, len(ids))
	for i, id := range ids {
		out[i] = Outcome{ID: id, Err: s.SetStatus(ctx, id, status)}
	}
	return out
}

// Len returns the number of stored camps.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.camps)
}
