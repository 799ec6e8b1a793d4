// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for MentorHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: MENTORHUB_MONGO_URI, MENTORHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mentor_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "mentorhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local'"},
	{Name: "storage_local_path", Default: "./uploads/submissions", Desc: "Local storage path for submission files"},
	{Name: "storage_local_url", Default: "/files/submissions", Desc: "URL prefix for serving local files"},

	// Curriculum
	{Name: "curriculum_path", Default: "", Desc: "Path to curriculum YAML (blank uses the embedded sheet)"},
	{Name: "curriculum_title", Default: "Strivers A2Z DSA Course", Desc: "Title shared by every curriculum task"},

	// Maintenance scheduling
	{Name: "maintenance_hour", Default: 0, Desc: "Local hour of day the daily maintenance run fires (0-23)"},
	{Name: "maintenance_timezone", Default: "Asia/Kolkata", Desc: "IANA timezone for the maintenance hour"},
	{Name: "cron_secret", Default: "", Desc: "Bearer token for the external cron trigger (blank disables it)"},

	// Retention windows
	{Name: "completed_retention_days", Default: 2, Desc: "Days a completed submission keeps its file"},
	{Name: "pending_reset_days", Default: 5, Desc: "Days before an unreviewed pending submission resets"},

	// SPA front end
	{Name: "cors_origins", Default: "http://localhost:3000", Desc: "Comma-separated allowed CORS origins"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, MENTORHUB_* for app), and
// command-line flags, merged with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MENTORHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		CurriculumPath:  appValues.String("curriculum_path"),
		CurriculumTitle: appValues.String("curriculum_title"),

		MaintenanceHour:     appValues.Int("maintenance_hour"),
		MaintenanceTimezone: appValues.String("maintenance_timezone"),
		CronSecret:          appValues.String("cron_secret"),

		CompletedRetentionDays: appValues.Int("completed_retention_days"),
		PendingResetDays:       appValues.Int("pending_reset_days"),

		CORSOrigins: appValues.String("cors_origins"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// MentorHub validates the MongoDB URI, the maintenance schedule, and the
// retention windows so configuration mistakes surface before anything
// connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.MaintenanceHour < 0 || appCfg.MaintenanceHour > 23 {
		return fmt.Errorf("maintenance_hour must be 0-23, got %d", appCfg.MaintenanceHour)
	}
	if _, err := time.LoadLocation(appCfg.MaintenanceTimezone); err != nil {
		return fmt.Errorf("invalid maintenance_timezone %q: %w", appCfg.MaintenanceTimezone, err)
	}

	if appCfg.CurriculumTitle == "" {
		return fmt.Errorf("curriculum_title must not be empty")
	}
	if appCfg.CompletedRetentionDays <= 0 {
		return fmt.Errorf("completed_retention_days must be positive, got %d", appCfg.CompletedRetentionDays)
	}
	if appCfg.PendingResetDays <= 0 {
		return fmt.Errorf("pending_reset_days must be positive, got %d", appCfg.PendingResetDays)
	}

	if appCfg.StorageType != "local" {
		return fmt.Errorf("unsupported storage_type %q", appCfg.StorageType)
	}

	return nil
}
