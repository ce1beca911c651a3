package organizerstore

import (
	"context"
	"sync"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/google/uuid"
)

type MemoryStore struct {
	mu   sync.RWMutex
	orgs map[string]models.Organizer
}

func NewMemory() *MemoryStore {
	return &MemoryStore{orgs: map[string]models.Organizer{}}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.Organizer, error) {
	if err := ctx.Err(); err != nil {
		return models.Organizer{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orgs[id]
	if !ok {
		return models.Organizer{}, apperr.ErrNotFound
	}
	return o, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Organizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]models.Organizer, 0, len(s.orgs))
	for _, o := range s.orgs {
		out = append(out, o)
	}
	s.mu.RUnlock()
	sortByName(out)
	return out, nil
}

// taken must be called with mu held.
func (s *MemoryStore) taken(nameCI, exceptID string) bool {
	for id, o := range s.orgs {
		if id != exceptID && o.NameCI == nameCI {
			return true
		}
	}
	return false
}

func (s *MemoryStore) Create(ctx context.Context, o models.Organizer) (models.Organizer, error) {
	if err := ctx.Err(); err != nil {
		return models.Organizer{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o.NameCI = text.Fold(o.Name)
	if s.taken(o.NameCI, "") {
		return models.Organizer{}, ErrDuplicateOrganizer
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	s.orgs[o.ID] = o
	return o, nil
}

func (s *MemoryStore) Update(ctx context.Context, o models.Organizer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.orgs[o.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	o.NameCI = text.Fold(o.Name)
	if s.taken(o.NameCI, o.ID) {
		return ErrDuplicateOrganizer
	}
	o.CreatedAt = cur.CreatedAt
	s.orgs[o.ID] = o
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.orgs, id)
	return nil
}
