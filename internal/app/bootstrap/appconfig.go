// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// Store backends selectable with store_backend.
const (
	BackendMongo     = "mongo"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, log level); everything specific to
// Campanion lives here.
type AppConfig struct {
	// Document store selection
	StoreBackend string // "mongo", "firestore" or "memory"

	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Firebase project (Firestore backend and ID token verification)
	FirebaseProjectID       string
	FirebaseCredentialsFile string // blank uses application default credentials

	// Session management configuration
	SessionKey    string
	SessionName   string
	SessionDomain string
	SessionMaxAge time.Duration

	// CORS origins allowed to call the API with credentials
	CORSAllowedOrigins []string

	// Listing and lifecycle behavior
	TimeZone               string // IANA zone calendar dates are read in
	DetailPolicy           string // "admin" or "owner"
	StrictStatus           bool
	PageSize               int
	BulkArchiveConcurrency int
	BulkArchiveChunk       int

	// AI extraction (disabled when GeminiAPIKey is blank)
	GeminiAPIKey   string
	GeminiModel    string
	ExtractFetcher string // "http" or "browser"
	BrowserBin     string

	// Request limits: sign-in attempts per IP per minute, extractions per
	// admin per hour
	LoginRateLimit   int
	ExtractRateLimit int

	// Collaborator deadlines (zero keeps the package defaults)
	TimeoutPing    time.Duration
	TimeoutShort   time.Duration
	TimeoutMedium  time.Duration
	TimeoutBatch   time.Duration
	TimeoutExtract time.Duration
}
