// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging); AppConfig covers
// everything specific to FileHaven.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey      string // Secret key for signing session cookies (must be strong in production)
	SessionBlockKey string // Optional key for encrypting session cookies

	// Blob storage configuration
	StorageLocalPath string // Directory file bytes are stored under (e.g., "./uploads/files")
	StorageLocalURL  string // URL prefix clients use to reach blobs (e.g., "/api/files/blob")

	// Trash purge configuration
	PurgeSchedule string // Cron schedule for the trash sweep (e.g., "@every 720h")

	// Shared secret the identity provider sends with sync webhooks.
	// Blank disables the check (local development).
	IdentityWebhookToken string

	// Base URL of the deployment, used in returned upload URLs
	BaseURL string // e.g., "https://filehaven.example.com" or "http://localhost:3000"
}
