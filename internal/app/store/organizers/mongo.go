package organizerstore

import (
	"context"
	"errors"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore relies on the unique name_ci index created by
// indexes.EnsureAll to reject duplicate names.
type MongoStore struct {
	c *mongo.Collection
}

func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{c: db.Collection(Collection)}
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Organizer, error) {
	var o models.Organizer
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Organizer{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Organizer{}, err
	}
	return o, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Organizer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orgs []models.Organizer
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (s *MongoStore) Create(ctx context.Context, o models.Organizer) (models.Organizer, error) {
	if o.ID == "" {
		o.ID = primitive.NewObjectID().Hex()
	}
	o.NameCI = text.Fold(o.Name)
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organizer{}, ErrDuplicateOrganizer
		}
		return models.Organizer{}, err
	}
	return o, nil
}

func (s *MongoStore) Update(ctx context.Context, o models.Organizer) error {
	res, err := s.c.UpdateByID(ctx, o.ID, bson.M{"$set": bson.M{
		"name":        o.Name,
		"name_ci":     text.Fold(o.Name),
		"link":        o.Link,
		"description": o.Description,
		"avatar_url":  o.AvatarURL,
		"updated_at":  o.UpdatedAt,
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateOrganizer
		}
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Delete removes the organizer only. Camps keep their snapshot fields.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
