// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Auth token configuration
	JWTSecret    string        // Secret key for signing bearer tokens (must be strong in production)
	AuthTokenTTL time.Duration // Bearer token lifetime

	// Email verification
	VerifyExpiry time.Duration // Verification link lifetime

	// Frontend configuration
	FrontendURL string // Base URL for links in emails (e.g., "https://app.askfield.org")
	SiteName    string // Display name used in emails

	// Mail delivery configuration
	MailProvider   string // "smtp" or "sendgrid"
	MailSMTPHost   string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort   int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser   string // SMTP username
	MailSMTPPass   string // SMTP password
	MailFrom       string // From email address (e.g., noreply@askfield.org)
	MailFromName   string // From display name
	SendGridAPIKey string // SendGrid API key (only used if MailProvider is "sendgrid")

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string // OAuth redirect registered with Google
}
