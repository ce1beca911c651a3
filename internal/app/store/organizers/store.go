// Package organizerstore persists organizer profiles. Names are unique
// case-insensitively through the folded NameCI field.
package organizerstore

import (
	"context"
	"errors"
	"sort"

	"github.com/dalemusser/campanion/internal/domain/models"
)

const Collection = "organizers"

var ErrDuplicateOrganizer = errors.New("an organizer with this name already exists")

// Store is the organizer persistence contract. Missing ids yield
// apperr.ErrNotFound.
type Store interface {
	Get(ctx context.Context, id string) (models.Organizer, error)
	// List returns every organizer ordered by folded name.
	List(ctx context.Context) ([]models.Organizer, error)
	Create(ctx context.Context, o models.Organizer) (models.Organizer, error)
	Update(ctx context.Context, o models.Organizer) error
	Delete(ctx context.Context, id string) error
}

func sortByName(orgs []models.Organizer) {
	sort.SliceStable(orgs, func(i, j int) bool {
		if orgs[i].NameCI != orgs[j].NameCI {
			return orgs[i].NameCI < orgs[j].NameCI
		}
		return orgs[i].ID < orgs[j].ID
	})
}
