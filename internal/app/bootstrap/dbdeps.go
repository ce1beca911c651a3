// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	campstore "github.com/dalemusser/campanion/internal/app/store/camps"
	organizerstore "github.com/dalemusser/campanion/internal/app/store/organizers"
	userstore "github.com/dalemusser/campanion/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app. Exactly one of
// the Mongo or Firestore clients is set, matching the store backend; the
// memory backend sets neither. FirebaseAuth is set whenever a Firebase
// project is configured.
type DBDeps struct {
	Backend string

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Firestore    *firestore.Client
	FirebaseAuth *fbauth.Client

	Camps      campstore.Store
	Organizers organizerstore.Store
	Users      userstore.Store
}
