// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS); AppConfig is everything specific to StudyMatch. The
// struct is passed to most lifecycle hooks, so any configuration needed
// during startup, request handling, or shutdown lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Google OAuth configuration (the only sign-in method)
	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is this API's externally visible URL, used for the OAuth
	// callback. FrontendURL is where browsers are sent after sign-in.
	BaseURL     string
	FrontendURL string

	// WSTokenKey signs the short-lived websocket handshake tokens.
	WSTokenKey string

	// InsightRefreshSpec is the cron expression for the nightly insight
	// sweep. Empty disables the background refresh.
	InsightRefreshSpec string
}
