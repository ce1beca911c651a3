package userstore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore keeps users in the top-level "users" collection with the
// uid as document id.
type FirestoreStore struct {
	client *firestore.Client
	col    *firestore.CollectionRef
}

func NewFirestore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, col: client.Collection(Collection)}
}

func decode(snap *firestore.DocumentSnapshot) (models.User, error) {
	var u models.User
	if err := snap.DataTo(&u); err != nil {
		return models.User{}, err
	}
	u.ID = snap.Ref.ID
	return u, nil
}

func (s *FirestoreStore) Get(ctx context.Context, uid string) (models.User, error) {
	if uid == "" {
		return models.User{}, apperr.ErrNotFound
	}
	snap, err := s.col.Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return models.User{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return decode(snap)
}

func (s *FirestoreStore) TouchLogin(ctx context.Context, uid, email string, at time.Time) (models.User, error) {
	ref := s.col.Doc(uid)
	var out models.User
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			out = models.User{ID: uid, Email: email, CreatedAt: at, LastLoginAt: &at}
			return tx.Create(ref, out)
		}
		if err != nil {
			return err
		}
		u, err := decode(snap)
		if err != nil {
			return err
		}
		u.Email = email
		u.LastLoginAt = &at
		out = u
		return tx.Update(ref, []firestore.Update{
			{Path: "email", Value: email},
			{Path: "lastLoginAt", Value: at},
		})
	})
	if err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (s *FirestoreStore) SetAdmin(ctx context.Context, uid string, admin bool, at time.Time) error {
	if uid == "" {
		return apperr.Invalid("uid", "uid is required")
	}
	ref := s.col.Doc(uid)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(ref)
		if status.Code(err) == codes.NotFound {
			return tx.Create(ref, models.User{ID: uid, IsAdmin: admin, CreatedAt: at})
		}
		if err != nil {
			return err
		}
		return tx.Update(ref, []firestore.Update{{Path: "isAdmin", Value: admin}})
	})
}

func (s *FirestoreStore) ListAdmins(ctx context.Context) ([]models.User, error) {
	it := s.col.Where("isAdmin", "==", true).Documents(ctx)
	defer it.Stop()

	var users []models.User
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		u, err := decode(snap)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	sortByEmail(users)
	return users, nil
}
