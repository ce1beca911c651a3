// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	"github.com/dalemusser/campanion/internal/app/system/paging"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Campanion.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CAMPANION_MONGO_URI, CAMPANION_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "store_backend", Default: BackendMongo, Desc: "Document store: 'mongo', 'firestore' or 'memory'"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "campanion", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "firebase_project_id", Default: "", Desc: "Firebase/GCP project id (Firestore backend and sign-in)"},
	{Name: "firebase_credentials_file", Default: "", Desc: "Service account JSON; blank uses application default credentials"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "campanion-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "720h", Desc: "Session cookie lifetime"},

	{Name: "cors_allowed_origins", Default: "", Desc: "Comma-separated origins allowed to call the API"},

	{Name: "time_zone", Default: "UTC", Desc: "IANA time zone used for calendar dates"},
	{Name: "detail_policy", Default: string(camppolicy.DetailAdmin), Desc: "Who may open non-active camps: 'admin' or 'owner'"},
	{Name: "strict_status", Default: false, Desc: "Treat unrecognized stored statuses as errors"},
	{Name: "page_size", Default: paging.PageSize, Desc: "Camps per listing page"},
	{Name: "bulk_archive_concurrency", Default: 4, Desc: "Parallel store batches during bulk archive"},
	{Name: "bulk_archive_chunk", Default: 25, Desc: "Camps per store batch during bulk archive"},

	{Name: "gemini_api_key", Default: "", Desc: "Gemini API key; blank disables import from a web page"},
	{Name: "gemini_model", Default: "gemini-2.5-flash", Desc: "Gemini model used for extraction"},
	{Name: "extract_fetcher", Default: "http", Desc: "Page fetcher for extraction: 'http' or 'browser'"},
	{Name: "browser_bin", Default: "", Desc: "Chrome binary for the browser fetcher (blank lets rod locate one)"},

	{Name: "login_rate_limit", Default: 10, Desc: "Sign-in attempts allowed per IP per minute"},
	{Name: "extract_rate_limit", Default: 30, Desc: "Page imports allowed per admin per hour"},

	{Name: "timeout_ping", Default: "", Desc: "Health check deadline (e.g., 2s)"},
	{Name: "timeout_short", Default: "", Desc: "Single-document store deadline"},
	{Name: "timeout_medium", Default: "", Desc: "List query deadline"},
	{Name: "timeout_batch", Default: "", Desc: "Bulk archive deadline"},
	{Name: "timeout_extract", Default: "", Desc: "Page fetch plus model call deadline"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, CAMPANION_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAMPANION", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		StoreBackend: strings.ToLower(strings.TrimSpace(appValues.String("store_backend"))),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		FirebaseProjectID:       appValues.String("firebase_project_id"),
		FirebaseCredentialsFile: appValues.String("firebase_credentials_file"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 30*24*time.Hour),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		TimeZone:               appValues.String("time_zone"),
		DetailPolicy:           appValues.String("detail_policy"),
		StrictStatus:           appValues.Bool("strict_status"),
		PageSize:               appValues.Int("page_size"),
		BulkArchiveConcurrency: appValues.Int("bulk_archive_concurrency"),
		BulkArchiveChunk:       appValues.Int("bulk_archive_chunk"),

		GeminiAPIKey:   appValues.String("gemini_api_key"),
		GeminiModel:    appValues.String("gemini_model"),
		ExtractFetcher: strings.ToLower(strings.TrimSpace(appValues.String("extract_fetcher"))),
		BrowserBin:     appValues.String("browser_bin"),

		LoginRateLimit:   appValues.Int("login_rate_limit"),
		ExtractRateLimit: appValues.Int("extract_rate_limit"),

		TimeoutPing:    appValues.Duration("timeout_ping", 0),
		TimeoutShort:   appValues.Duration("timeout_short", 0),
		TimeoutMedium:  appValues.Duration("timeout_medium", 0),
		TimeoutBatch:   appValues.Duration("timeout_batch", 0),
		TimeoutExtract: appValues.Duration("timeout_extract", 0),
	}

	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Everything here can be checked without touching a backend.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.StoreBackend {
	case BackendMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required")
		}
	case BackendFirestore:
		if appCfg.FirebaseProjectID == "" {
			return fmt.Errorf("store_backend=firestore requires firebase_project_id")
		}
	case BackendMemory:
		if coreCfg != nil && coreCfg.Env == "prod" {
			logger.Warn("memory store backend in prod: data is lost on restart")
		}
	default:
		return fmt.Errorf("unknown store_backend %q (want mongo, firestore or memory)", appCfg.StoreBackend)
	}

	if _, err := time.LoadLocation(appCfg.TimeZone); err != nil {
		return fmt.Errorf("invalid time_zone %q: %w", appCfg.TimeZone, err)
	}
	if _, err := camppolicy.ParseDetailPolicy(appCfg.DetailPolicy); err != nil {
		return err
	}
	if appCfg.PageSize < 1 || appCfg.PageSize > paging.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", paging.MaxPageSize)
	}
	if appCfg.BulkArchiveConcurrency < 1 || appCfg.BulkArchiveChunk < 1 {
		return fmt.Errorf("bulk_archive_concurrency and bulk_archive_chunk must be positive")
	}
	if appCfg.LoginRateLimit < 1 || appCfg.ExtractRateLimit < 1 {
		return fmt.Errorf("login_rate_limit and extract_rate_limit must be positive")
	}
	switch appCfg.ExtractFetcher {
	case "", "http", "browser":
	default:
		return fmt.Errorf("unknown extract_fetcher %q (want http or browser)", appCfg.ExtractFetcher)
	}
	if coreCfg != nil && coreCfg.Env == "prod" && strings.HasPrefix(appCfg.SessionKey, "dev-only") {
		return fmt.Errorf("session_key must be set in prod")
	}
	return nil
}
