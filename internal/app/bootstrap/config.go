// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for AskField.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: ASKFIELD_MONGO_URI, ASKFIELD_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "askfield", Desc: "MongoDB database name"},

	// Auth tokens
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing key (must be strong in production)"},
	{Name: "auth_token_ttl", Default: "720h", Desc: "Bearer token lifetime (e.g., 720h for 30 days)"},

	// Email verification
	{Name: "verify_expiry", Default: "24h", Desc: "Email verification link expiry (e.g., 24h, 1h)"},

	// Frontend
	{Name: "frontend_url", Default: "http://localhost:3000", Desc: "Base URL for links in emails"},
	{Name: "site_name", Default: "AskField", Desc: "Display name used in emails"},

	// Mail delivery
	{Name: "mail_provider", Default: "smtp", Desc: "Mail delivery backend: 'smtp' or 'sendgrid'"},
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@askfield.org", Desc: "From email address"},
	{Name: "mail_from_name", Default: "AskField", Desc: "From display name"},
	{Name: "sendgrid_api_key", Default: "", Desc: "SendGrid API key (only used with mail_provider=sendgrid)"},

	// Google OAuth
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},
	{Name: "google_redirect_url", Default: "", Desc: "OAuth redirect URL registered with Google"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ASKFIELD_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ASKFIELD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		JWTSecret:    appValues.String("jwt_secret"),
		AuthTokenTTL: appValues.Duration("auth_token_ttl", 30*24*time.Hour),

		VerifyExpiry: appValues.Duration("verify_expiry", 24*time.Hour),

		FrontendURL: appValues.String("frontend_url"),
		SiteName:    appValues.String("site_name"),

		MailProvider:   appValues.String("mail_provider"),
		MailSMTPHost:   appValues.String("mail_smtp_host"),
		MailSMTPPort:   appValues.Int("mail_smtp_port"),
		MailSMTPUser:   appValues.String("mail_smtp_user"),
		MailSMTPPass:   appValues.String("mail_smtp_pass"),
		MailFrom:       appValues.String("mail_from"),
		MailFromName:   appValues.String("mail_from_name"),
		SendGridAPIKey: appValues.String("sendgrid_api_key"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),
		GoogleRedirectURL:  appValues.String("google_redirect_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret must be set")
	}
	if coreCfg.Env == "prod" && appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("jwt_secret must be changed from the development default in production")
	}

	switch appCfg.MailProvider {
	case "smtp":
		// Defaults are fine for local development with Mailpit.
	case "sendgrid":
		if appCfg.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid_api_key is required when mail_provider is 'sendgrid'")
		}
	default:
		return fmt.Errorf("mail_provider must be 'smtp' or 'sendgrid', got %q", appCfg.MailProvider)
	}

	return nil
}
