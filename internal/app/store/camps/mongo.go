package campstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore stores camps in a MongoDB collection. Ids are hex ObjectIDs
// kept as strings.
type MongoStore struct {
	c *mongo.Collection
}

func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{c: db.Collection(Collection)}
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Camp, error) {
	var c models.Camp
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Camp{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Camp{}, err
	}
	return c, nil
}

func (s *MongoStore) List(ctx context.Context, q Query) ([]models.Camp, error) {
	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.CreatorID != "" {
		filter["creator_id"] = q.CreatorID
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var camps []models.Camp
	if err := cur.All(ctx, &camps); err != nil {
		return nil, err
	}
	return camps, nil
}

func (s *MongoStore) Create(ctx context.Context, c models.Camp) (models.Camp, error) {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Camp{}, err
	}
	return c, nil
}

func (s *MongoStore) Update(ctx context.Context, c models.Camp) error {
	res, err := s.c.UpdateByID(ctx, c.ID, bson.M{"$set": bson.M{
		"name":           c.Name,
		"description":    c.Description,
		"location":       c.Location,
		"start_date":     c.StartDate,
		"end_date":       c.EndDate,
		"price":          c.Price,
		"image_url":      c.ImageURL,
		"activities":     c.Activities,
		"organizer_id":   c.OrganizerID,
		"organizer_name": c.OrganizerName,
		"organizer_link": c.OrganizerLink,
		"status":         c.Status,
		"updated_at":     c.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *MongoStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

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

// BatchSetStatus issues one update per id so each outcome can tell a missing
// camp from a failed write.
func (s *MongoStore) BatchSetStatus(ctx context.Context, ids []string, status string) []Outcome {
	out := make([]Outcome, len(ids))
	for i, id := range ids {
		out[i].ID = id
		if err := ctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		out[i].Err = s.SetStatus(ctx, id, status)
	}
	return out
}
