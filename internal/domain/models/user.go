// internal/domain/models/user.go
package models

import "time"

// User mirrors the identity provider account. ID is the provider uid.
// IsAdmin is only ever changed by operators (see cmd/campctl), never by the
// user through the API.
type User struct {
	ID          string     `bson:"_id" firestore:"-" json:"id"`
	Email       string     `bson:"email" firestore:"email" json:"email"`
	IsAdmin     bool       `bson:"is_admin" firestore:"isAdmin" json:"isAdmin"`
	CreatedAt   time.Time  `bson:"created_at" firestore:"createdAt" json:"createdAt"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" firestore:"lastLoginAt" json:"lastLoginAt,omitempty"`
}
