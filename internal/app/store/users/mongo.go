package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	c *mongo.Collection
}

func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{c: db.Collection(Collection)}
}

func (s *MongoStore) Get(ctx context.Context, uid string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *MongoStore) TouchLogin(ctx context.Context, uid, email string, at time.Time) (models.User, error) {
	update := bson.M{
		"$set":         bson.M{"email": email, "last_login_at": at},
		"$setOnInsert": bson.M{"is_admin": false, "created_at": at},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": uid}, update, opts).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *MongoStore) SetAdmin(ctx context.Context, uid string, admin bool, at time.Time) error {
	_, err := s.c.UpdateByID(ctx, uid, bson.M{
		"$set":         bson.M{"is_admin": admin},
		"$setOnInsert": bson.M{"email": "", "created_at": at},
	}, options.Update().SetUpsert(true))
	return err
}

func (s *MongoStore) ListAdmins(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"is_admin": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
