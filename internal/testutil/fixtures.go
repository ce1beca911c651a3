package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/campanion/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NewCamp returns a fully populated camp without an id. Times are truncated
// to milliseconds so they survive a Mongo round trip unchanged.
func NewCamp(creatorID, status string) models.Camp {
	now := time.Now().UTC().Truncate(time.Millisecond)
	start := Day(2030, time.July, 1)
	end := Day(2030, time.July, 5)
	return models.Camp{
		Name:          "Lakeside Adventure",
		Description:   "A week of canoeing and hiking.",
		Location:      "Lake Placid",
		StartDate:     &start,
		EndDate:       &end,
		Price:         250,
		ImageURL:      models.DefaultCampImageURL,
		Activities:    []string{"canoeing", "hiking"},
		OrganizerID:   "org-1",
		OrganizerName: "Lakeside Outdoors",
		OrganizerLink: "https://lakeside.example.com",
		CreatorID:     creatorID,
		CreationMode:  models.CreationModeAdmin,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewOrganizer returns an organizer without an id.
func NewOrganizer(name string) models.Organizer {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.Organizer{
		Name:        name,
		Link:        "https://example.com",
		Description: "Runs camps.",
		AvatarURL:   models.PlaceholderAvatarURL(name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
