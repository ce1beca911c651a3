package organizerstore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore checks name uniqueness with a query before writing. The
// check and the write are not atomic.
type FirestoreStore struct {
	col *firestore.CollectionRef
}

func NewFirestore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{col: client.Collection(Collection)}
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (models.Organizer, error) {
	if id == "" {
		return models.Organizer{}, apperr.ErrNotFound
	}
	snap, err := s.col.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.Organizer{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Organizer{}, err
	}
	return decode(snap)
}

func decode(snap *firestore.DocumentSnapshot) (models.Organizer, error) {
	var o models.Organizer
	if err := snap.DataTo(&o); err != nil {
		return models.Organizer{}, err
	}
	o.ID = snap.Ref.ID
	return o, nil
}

func (s *FirestoreStore) List(ctx context.Context) ([]models.Organizer, error) {
	return s.query(ctx, s.col.Query)
}

func (s *FirestoreStore) query(ctx context.Context, q firestore.Query) ([]models.Organizer, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var orgs []models.Organizer
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		o, err := decode(snap)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	sortByName(orgs)
	return orgs, nil
}

func (s *FirestoreStore) nameTaken(ctx context.Context, nameCI, exceptID string) (bool, error) {
	orgs, err := s.query(ctx, s.col.Where("nameCi", "==", nameCI))
	if err != nil {
		return false, err
	}
	for _, o := range orgs {
		if o.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (s *FirestoreStore) Create(ctx context.Context, o models.Organizer) (models.Organizer, error) {
	o.NameCI = text.Fold(o.Name)
	taken, err := s.nameTaken(ctx, o.NameCI, "")
	if err != nil {
		return models.Organizer{}, err
	}
	if taken {
		return models.Organizer{}, ErrDuplicateOrganizer
	}
	ref := s.col.NewDoc()
	if o.ID != "" {
		ref = s.col.Doc(o.ID)
	}
	if _, err := ref.Create(ctx, o); err != nil {
		return models.Organizer{}, err
	}
	o.ID = ref.ID
	return o, nil
}

func (s *FirestoreStore) Update(ctx context.Context, o models.Organizer) error {
	if o.ID == "" {
		return apperr.ErrNotFound
	}
	nameCI := text.Fold(o.Name)
	taken, err := s.nameTaken(ctx, nameCI, o.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateOrganizer
	}
	_, err = s.col.Doc(o.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: o.Name},
		{Path: "nameCi", Value: nameCI},
		{Path: "link", Value: o.Link},
		{Path: "description", Value: o.Description},
		{Path: "avatarUrl", Value: o.AvatarURL},
		{Path: "updatedAt", Value: o.UpdatedAt},
	})
	if status.Code(err) == codes.NotFound {
		return apperr.ErrNotFound
	}
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.ErrNotFound
	}
	_, err := s.col.Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return apperr.ErrNotFound
	}
	return err
}
