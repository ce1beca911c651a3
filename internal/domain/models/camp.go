// internal/domain/models/camp.go
package models

import "time"

// DefaultCampImageURL is stored when a camp is written without an image.
const DefaultCampImageURL = "https://placehold.co/600x400?text=Camp"

// Creation modes record which surface created a camp. Nothing branches on them.
const (
	CreationModeAdmin = "admin"
	CreationModeUser  = "user"
)

// Camp is a bookable listing. OrganizerName and OrganizerLink are a snapshot
// of the organizer taken when the camp was last written; they are not kept in
// sync with later organizer edits.
type Camp struct {
	ID          string `bson:"_id" firestore:"-" json:"id"`
	Name        string `bson:"name" firestore:"name" json:"name"`
	Description string `bson:"description" firestore:"description" json:"description"`
	Location    string `bson:"location" firestore:"location" json:"location"`

	StartDate *time.Time `bson:"start_date,omitempty" firestore:"startDate" json:"startDate,omitempty"`
	EndDate   *time.Time `bson:"end_date,omitempty" firestore:"endDate" json:"endDate,omitempty"`

	Price      float64  `bson:"price" firestore:"price" json:"price"`
	ImageURL   string   `bson:"image_url" firestore:"imageUrl" json:"imageUrl"`
	Activities []string `bson:"activities,omitempty" firestore:"activities" json:"activities,omitempty"`

	OrganizerID   string `bson:"organizer_id" firestore:"organizerId" json:"organizerId"`
	OrganizerName string `bson:"organizer_name" firestore:"organizerName" json:"organizerName"`
	OrganizerLink string `bson:"organizer_link,omitempty" firestore:"organizerLink" json:"organizerLink,omitempty"`

	CreatorID    string `bson:"creator_id" firestore:"creatorId" json:"creatorId"`
	CreationMode string `bson:"creation_mode" firestore:"creationMode" json:"creationMode"`

	// Status is kept as the raw stored string so that records written
	// out-of-band with an unrecognized value still load.
	Status string `bson:"status" firestore:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" firestore:"updatedAt" json:"updatedAt"`
}

// HasSchedule reports whether both dates are present.
func (c Camp) HasSchedule() bool {
	return c.StartDate != nil && c.EndDate != nil
}

// Clone returns a deep copy so callers can mutate slices and date pointers
// without touching the original.
func (c Camp) Clone() Camp {
	out := c
	if c.StartDate != nil {
		t := *c.StartDate
		out.StartDate = &t
	}
	if c.EndDate != nil {
		t := *c.EndDate
		out.EndDate = &t
	}
	if c.Activities != nil {
		out.Activities = append([]string(nil), c.Activities...)
	}
	return out
}
