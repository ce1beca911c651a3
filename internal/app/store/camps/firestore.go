package campstore

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

// FirestoreStore stores camps as documents in the "camps" collection using
// camelCase field names.
type FirestoreStore struct {
	client *firestore.Client
	col    *firestore.CollectionRef
}

func NewFirestore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client, col: client.Collection(Collection)}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *FirestoreStore) decode(snap *firestore.DocumentSnapshot) (models.Camp, error) {
	var c models.Camp
	if err := snap.DataTo(&c); err != nil {
		return models.Camp{}, err
	}
	c.ID = snap.Ref.ID
	return c, nil
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (models.Camp, error) {
	if id == "" {
		return models.Camp{}, apperr.ErrNotFound
	}
	snap, err := s.col.Doc(id).Get(ctx)
	if isNotFound(err) {
		return models.Camp{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Camp{}, err
	}
	return s.decode(snap)
}

// List filters on equality only and sorts in memory, so no composite index
// is needed.
func (s *FirestoreStore) List(ctx context.Context, q Query) ([]models.Camp, error) {
	query := s.col.Query
	if q.Status != "" {
		query = query.Where("status", "==", q.Status)
	}
	if q.CreatorID != "" {
		query = query.Where("creatorId", "==", q.CreatorID)
	}

	it := query.Documents(ctx)
	defer it.Stop()

	var camps []models.Camp
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		c, err := s.decode(snap)
		if err != nil {
			return nil, err
		}
		camps = append(camps, c)
	}
	sortNewest(camps)
	return camps, nil
}

func (s *FirestoreStore) Create(ctx context.Context, c models.Camp) (models.Camp, error) {
	ref := s.col.NewDoc()
	if c.ID != "" {
		ref = s.col.Doc(c.ID)
	}
	if _, err := ref.Create(ctx, c); err != nil {
		return models.Camp{}, err
	}
	c.ID = ref.ID
	return c, nil
}

func (s *FirestoreStore) Update(ctx context.Context, c models.Camp) error {
	if c.ID == "" {
		return apperr.ErrNotFound
	}
	_, err := s.col.Doc(c.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: c.Name},
		{Path: "description", Value: c.Description},
		{Path: "location", Value: c.Location},
		{Path: "startDate", Value: c.StartDate},
		{Path: "endDate", Value: c.EndDate},
		{Path: "price", Value: c.Price},
		{Path: "imageUrl", Value: c.ImageURL},
		{Path: "activities", Value: c.Activities},
		{Path: "organizerId", Value: c.OrganizerID},
		{Path: "organizerName", Value: c.OrganizerName},
		{Path: "organizerLink", Value: c.OrganizerLink},
		{Path: "status", Value: c.Status},
		{Path: "updatedAt", Value: c.UpdatedAt},
	})
	if isNotFound(err) {
		return apperr.ErrNotFound
	}
	return err
}

func statusUpdates(st string) []firestore.Update {
	return []firestore.Update{
		{Path: "status", Value: st},
		{Path: "updatedAt", Value: time.Now().UTC()},
	}
}

func (s *FirestoreStore) SetStatus(ctx context.Context, id, st string) error {
	if id == "" {
		return apperr.ErrNotFound
	}
	_, err := s.col.Doc(id).Update(ctx, statusUpdates(st))
	if isNotFound(err) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.ErrNotFound
	}
	_, err := s.col.Doc(id).Delete(ctx, firestore.Exists)
	if isNotFound(err) {
		return apperr.ErrNotFound
	}
	return err
}

// BatchSetStatus enqueues every update on a BulkWriter and collects each
// job's result after End. Updates are independent; one failure does not
// stop the others.
func (s *FirestoreStore) BatchSetStatus(ctx context.Context, ids []string, st string) []Outcome {
	out := make([]Outcome, len(ids))
	jobs := make([]*firestore.BulkWriterJob, len(ids))

	bw := s.client.BulkWriter(ctx)
	for i, id := range ids {
		out[i].ID = id
		if id == "" {
			out[i].Err = apperr.ErrNotFound
			continue
		}
		job, err := bw.Update(s.col.Doc(id), statusUpdates(st))
		if err != nil {
			out[i].Err = err
			continue
		}
		jobs[i] = job
	}
	bw.End()

	for i, job := range jobs {
		if job == nil {
			continue
		}
		if _, err := job.Results(); err != nil {
			if isNotFound(err) {
				err = apperr.ErrNotFound
			}
			out[i].Err = err
		}
	}
	return out
}
