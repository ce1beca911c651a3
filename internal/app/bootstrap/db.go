// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	campstore "github.com/dalemusser/campanion/internal/app/store/camps"
	organizerstore "github.com/dalemusser/campanion/internal/app/store/organizers"
	userstore "github.com/dalemusser/campanion/internal/app/store/users"
	"github.com/dalemusser/campanion/internal/app/system/indexes"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ConnectDB opens the configured document store and, when a Firebase
// project is set, the Firebase Auth client used to verify ID tokens.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	deps := DBDeps{Backend: appCfg.StoreBackend}

	var fbApp *firebase.App
	if appCfg.FirebaseProjectID != "" {
		var opts []option.ClientOption
		if appCfg.FirebaseCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(appCfg.FirebaseCredentialsFile))
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: appCfg.FirebaseProjectID}, opts...)
		if err != nil {
			return DBDeps{}, fmt.Errorf("firebase app: %w", err)
		}
		fbApp = app
		authClient, err := app.Auth(ctx)
		if err != nil {
			return DBDeps{}, fmt.Errorf("firebase auth: %w", err)
		}
		deps.FirebaseAuth = authClient
	}

	switch appCfg.StoreBackend {
	case BackendMongo:
		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
		defer cancel()
		client, err := mongo.Connect(pingCtx, options.Client().
			ApplyURI(appCfg.MongoURI).
			SetMaxPoolSize(appCfg.MongoMaxPoolSize).
			SetMinPoolSize(appCfg.MongoMinPoolSize))
		if err != nil {
			return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
		}
		db := client.Database(appCfg.MongoDatabase)
		deps.MongoClient = client
		deps.MongoDatabase = db
		deps.Camps = campstore.NewMongo(db)
		deps.Organizers = organizerstore.NewMongo(db)
		deps.Users = userstore.NewMongo(db)
		logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	case BackendFirestore:
		if fbApp == nil {
			return DBDeps{}, fmt.Errorf("store_backend=firestore requires firebase_project_id")
		}
		client, err := fbApp.Firestore(ctx)
		if err != nil {
			return DBDeps{}, fmt.Errorf("firestore client: %w", err)
		}
		deps.Firestore = client
		deps.Camps = campstore.NewFirestore(client)
		deps.Organizers = organizerstore.NewFirestore(client)
		deps.Users = userstore.NewFirestore(client)
		logger.Info("connected to Firestore", zap.String("project", appCfg.FirebaseProjectID))

	case BackendMemory:
		deps.Camps = campstore.NewMemory()
		deps.Organizers = organizerstore.NewMemory()
		deps.Users = userstore.NewMemory()
		logger.Warn("using in-memory store; data is not persisted")

	default:
		return DBDeps{}, fmt.Errorf("unknown store_backend %q", appCfg.StoreBackend)
	}

	return deps, nil
}

// EnsureSchema creates the Mongo indexes. Firestore composite indexes are
// managed with the Firebase CLI; the memory backend needs none.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
	defer cancel()
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	logger.Info("indexes ensured")
	return nil
}

// ping checks the active backend. Nil for the memory backend.
func (d DBDeps) ping() func(ctx context.Context) error {
	switch {
	case d.MongoClient != nil:
		return func(ctx context.Context) error {
			return d.MongoClient.Ping(ctx, readpref.Primary())
		}
	case d.Firestore != nil:
		return func(ctx context.Context) error {
			return firestorePing(ctx, d.Firestore)
		}
	}
	return nil
}

func firestorePing(ctx context.Context, client *firestore.Client) error {
	it := client.Collection(campstore.Collection).Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return err
	}
	return nil
}
