// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig
// handles framework-level settings like HTTP ports, TLS, logging level,
// and request size limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: mentorhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// File storage configuration
	StorageType      string // Storage backend: "local" (default)
	StorageLocalPath string // Local storage path (e.g., "./uploads/submissions")
	StorageLocalURL  string // URL prefix for serving local files

	// Curriculum configuration
	CurriculumPath  string // Path to the curriculum YAML; blank uses the embedded sheet
	CurriculumTitle string // Title shared by every curriculum task (backfill dedup key)

	// Maintenance scheduling
	MaintenanceHour     int    // Local hour of day the daily run fires (0-23)
	MaintenanceTimezone string // IANA timezone the hour is interpreted in
	CronSecret          string // Bearer token for POST /api/cron/run; blank disables the endpoint

	// Retention windows, in days
	CompletedRetentionDays int // completed submissions older than this lose their files
	PendingResetDays       int // pending submissions older than this reset to not_started

	// CORS origins for the SPA front end, comma-separated
	CORSOrigins string
}
