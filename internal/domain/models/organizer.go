// internal/domain/models/organizer.go
package models

import (
	"net/url"
	"time"
)

// Organizer is the profile camps reference through OrganizerID.
type Organizer struct {
	ID          string    `bson:"_id" firestore:"-" json:"id"`
	Name        string    `bson:"name" firestore:"name" json:"name"`
	NameCI      string    `bson:"name_ci" firestore:"nameCi" json:"-"` // ← always stored
	Link        string    `bson:"link,omitempty" firestore:"link" json:"link,omitempty"`
	Description string    `bson:"description" firestore:"description" json:"description"`
	AvatarURL   string    `bson:"avatar_url" firestore:"avatarUrl" json:"avatarUrl"`
	CreatedAt   time.Time `bson:"created_at" firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" firestore:"updatedAt" json:"updatedAt"`
}

// PlaceholderAvatarURL builds the generated avatar used when an organizer has
// no image of its own.
func PlaceholderAvatarURL(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("background", "random")
	return "https://ui-avatars.com/api/?" + q.Encode()
}
