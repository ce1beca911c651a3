// Package campstore persists camps. Three backends share the Store
// interface: MongoDB, Firestore and an in-memory map for development and
// tests.
//
// Every backend returns apperr.ErrNotFound for a missing id and leaves other
// failures unwrapped; callers classify them.
package campstore

import (
	"context"
	"sort"

	"github.com/dalemusser/campanion/internal/domain/models"
)

// Collection is the collection (Mongo) or top-level collection (Firestore)
// name.
const Collection = "camps"

// Query restricts List. Empty fields do not filter.
type Query struct {
	Status    string
	CreatorID string
}

// Outcome is the result of one item in a batch write.
type Outcome struct {
	ID  string
	Err error
}

// Store is the camp persistence contract.
type Store interface {
	Get(ctx context.Context, id string) (models.Camp, error)
	// List returns matching camps, newest first.
	List(ctx context.Context, q Query) ([]models.Camp, error)
	// Create assigns an id when c.ID is empty and stores c as given.
	Create(ctx context.Context, c models.Camp) (models.Camp, error)
	// Update overwrites the mutable fields of an existing camp. ID,
	// CreatorID, CreationMode and CreatedAt are never written.
	Update(ctx context.Context, c models.Camp) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	// BatchSetStatus applies independent status updates. It never fails as a
	// whole; the returned slice has one Outcome per id, in order.
	BatchSetStatus(ctx context.Context, ids []string, status string) []Outcome
}

func sortNewest(camps []models.Camp) {
	sort.SliceStable(camps, func(i, j int) bool {
		if !camps[i].CreatedAt.Equal(camps[j].CreatedAt) {
			return camps[i].CreatedAt.After(camps[j].CreatedAt)
		}
		return camps[i].ID < camps[j].ID
	})
}
