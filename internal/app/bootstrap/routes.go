// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authapifeature "github.com/askfield/askfield/internal/app/features/authapi"
	authgooglefeature "github.com/askfield/askfield/internal/app/features/authgoogle"
	healthfeature "github.com/askfield/askfield/internal/app/features/health"
	userstore "github.com/askfield/askfield/internal/app/store/users"
	"github.com/askfield/askfield/internal/app/system/auth"
	"github.com/askfield/askfield/internal/app/system/googleauth"
	"github.com/askfield/askfield/internal/app/system/mailer"
	"github.com/askfield/askfield/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := token.NewIssuer(appCfg.JWTSecret, appCfg.AuthTokenTTL)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase)
	verifier := auth.NewVerifier(tokens, userstore.NewFetcher(deps.MongoDatabase), logger)
	mail := buildMailer(appCfg, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account authentication API
	authHandler := authapifeature.NewHandler(users, mail, tokens,
		appCfg.FrontendURL, appCfg.SiteName, appCfg.VerifyExpiry, logger)
	r.Mount("/api/auth", authapifeature.Routes(authHandler, verifier))

	// Google OAuth sign-in
	exchanger := googleauth.New(appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.GoogleRedirectURL)
	if !exchanger.IsConfigured() {
		logger.Warn("google oauth not configured; /api/auth/google will reject all codes")
	}
	googleHandler := authgooglefeature.NewHandler(exchanger, users, tokens, logger)
	r.Mount("/api/auth/google", authgooglefeature.Routes(googleHandler))

	return r, nil
}

func buildMailer(appCfg AppConfig, logger *zap.Logger) mailer.Mailer {
	if appCfg.MailProvider == "sendgrid" {
		return mailer.NewSendGridMailer(appCfg.SendGridAPIKey, appCfg.MailFrom, appCfg.MailFromName, logger)
	}
	return mailer.NewSMTPMailer(
		appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName,
	)
}
