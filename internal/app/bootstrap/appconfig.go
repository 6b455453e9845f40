// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request body limits. AppConfig is
// where everything specific to ScholarHub lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token auth configuration
	TokenSecret string        // HMAC signing secret for API tokens (must be strong in production)
	TokenTTL    time.Duration // Token lifetime (e.g., 24h)

	// File storage configuration
	StorageLocalPath string // Local storage path (e.g., "./uploads/manuscripts")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/manuscripts")

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (empty disables outbound mail)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@scholarhub.org)
	MailFromName string // From display name (e.g., ScholarHub)

	// SiteName appears in notification emails.
	SiteName string

	// BaseURL for links in notification emails.
	BaseURL string

	// EditorInChiefEmail, when set, promotes that account to
	// editor-in-chief on startup.
	EditorInChiefEmail string
}
