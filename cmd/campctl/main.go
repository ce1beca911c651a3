// Command campctl runs operator tasks against the Campanion store: admin
// grants, bulk archive and extraction checks.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dalemusser/campanion/internal/app/bootstrap"
	"github.com/dalemusser/campanion/internal/app/system/paging"
	"github.com/dalemusser/waffle/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// connectFunc opens the store. Tests swap in a memory backend they can seed.
type connectFunc func(ctx context.Context, appCfg bootstrap.AppConfig, logger *zap.Logger) (bootstrap.DBDeps, error)

func defaultConnect(ctx context.Context, appCfg bootstrap.AppConfig, logger *zap.Logger) (bootstrap.DBDeps, error) {
	core := &config.CoreConfig{Env: "prod"}
	if err := bootstrap.ValidateConfig(core, appCfg, logger); err != nil {
		return bootstrap.DBDeps{}, err
	}
	return bootstrap.ConnectDB(ctx, core, appCfg, logger)
}

type cli struct {
	cfg     bootstrap.AppConfig
	verbose bool
	logger  *zap.Logger
	connect connectFunc
	now     func() time.Time
}

func env(key, def string) string {
	if v := os.Getenv("CAMPANION_" + key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv("CAMPANION_" + key)); err == nil {
		return n
	}
	return def
}

// newRootCmd builds the command tree. Store flags default to the same
// CAMPANION_* variables the server reads.
func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "campctl",
		Short:         "Operator tasks for Campanion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.logger != nil {
				return nil
			}
			if c.verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				c.logger = l
			} else {
				c.logger = zap.NewNop()
			}
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.cfg.StoreBackend, "backend", env("STORE_BACKEND", bootstrap.BackendMongo), "store backend: mongo, firestore or memory")
	f.StringVar(&c.cfg.MongoURI, "mongo-uri", env("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	f.StringVar(&c.cfg.MongoDatabase, "mongo-db", env("MONGO_DATABASE", "campanion"), "MongoDB database name")
	f.StringVar(&c.cfg.FirebaseProjectID, "firebase-project", env("FIREBASE_PROJECT_ID", ""), "Firebase project id")
	f.StringVar(&c.cfg.FirebaseCredentialsFile, "firebase-credentials", env("FIREBASE_CREDENTIALS_FILE", ""), "service account JSON file")
	f.StringVar(&c.cfg.TimeZone, "time-zone", env("TIME_ZONE", "UTC"), "IANA zone calendar dates are read in")
	f.StringVar(&c.cfg.GeminiAPIKey, "gemini-key", env("GEMINI_API_KEY", ""), "Gemini API key")
	f.StringVar(&c.cfg.GeminiModel, "gemini-model", env("GEMINI_MODEL", "gemini-2.5-flash"), "Gemini model")
	f.StringVar(&c.cfg.ExtractFetcher, "fetcher", env("EXTRACT_FETCHER", "http"), "page fetcher: http or browser")
	f.StringVar(&c.cfg.BrowserBin, "browser-bin", env("BROWSER_BIN", ""), "Chrome binary for the browser fetcher")
	f.IntVar(&c.cfg.BulkArchiveConcurrency, "concurrency", envInt("BULK_ARCHIVE_CONCURRENCY", 4), "parallel batches for archive-started")
	f.BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	c.cfg.SessionKey = "unused-by-campctl"
	c.cfg.DetailPolicy = "admin"
	c.cfg.PageSize = paging.PageSize
	c.cfg.BulkArchiveChunk = 25
	c.cfg.LoginRateLimit = 1
	c.cfg.ExtractRateLimit = 1

	root.AddCommand(
		newGrantAdminCmd(c, true),
		newGrantAdminCmd(c, false),
		newListAdminsCmd(c),
		newArchiveStartedCmd(c),
		newExtractCmd(c),
	)
	return root
}

// open connects and returns a cleanup that releases the clients.
func (c *cli) open(ctx context.Context) (bootstrap.DBDeps, func(), error) {
	deps, err := c.connect(ctx, c.cfg, c.logger)
	if err != nil {
		return bootstrap.DBDeps{}, nil, fmt.Errorf("connect: %w", err)
	}
	return deps, func() {
		_ = bootstrap.Shutdown(context.Background(), nil, c.cfg, deps, c.logger)
	}, nil
}

func main() {
	c := &cli{connect: defaultConnect, now: time.Now}
	if err := newRootCmd(c).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "campctl:", err)
		os.Exit(1)
	}
}
