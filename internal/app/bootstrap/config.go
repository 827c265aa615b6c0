// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for FileHaven.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, storage_local_path, etc.
//   - Environment variables: FILEHAVEN_MONGO_URI, FILEHAVEN_STORAGE_LOCAL_PATH, etc.
//   - Command-line flags: --mongo_uri, --storage_local_path, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "filehaven", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_block_key", Default: "", Desc: "Session encryption key (32 bytes; blank disables encryption)"},

	// Blob storage configuration
	{Name: "storage_local_path", Default: "./uploads/files", Desc: "Local storage path for uploaded file bytes"},
	{Name: "storage_local_url", Default: "/api/files/blob", Desc: "URL prefix for reaching stored blobs"},

	// Trash purge configuration
	{Name: "purge_schedule", Default: "@every 720h", Desc: "Cron schedule for permanently removing trashed files"},

	// Identity provider webhook
	{Name: "identity_webhook_token", Default: "", Desc: "Shared secret required on identity sync calls (blank disables the check)"},

	// Base URL for links returned to clients
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL of this deployment"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app. WAFFLE's config.LoadWithAppConfig merges .env files,
// config files, FILEHAVEN_* environment variables, and command-line
// flags, with precedence: flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FILEHAVEN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:      appValues.String("session_key"),
		SessionBlockKey: appValues.String("session_block_key"),

		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		PurgeSchedule: appValues.String("purge_schedule"),

		IdentityWebhookToken: appValues.String("identity_webhook_token"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// FileHaven validates the MongoDB URI format and the purge schedule so
// configuration mistakes fail at startup instead of at 3am when the
// sweep first fires.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if _, err := cron.ParseStandard(appCfg.PurgeSchedule); err != nil {
		return fmt.Errorf("invalid purge_schedule %q: %w", appCfg.PurgeSchedule, err)
	}

	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key must not be empty")
	}

	return nil
}
