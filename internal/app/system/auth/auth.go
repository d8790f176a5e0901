// Package auth loads the authenticated user from the Authorization header
// and injects it into the request context.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/askfield/askfield/internal/app/system/token"
	"github.com/askfield/askfield/internal/domain/models"
	"go.uber.org/zap"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// UserFetcher resolves a token subject back to a live user record. Fetching
// fresh data on every request means deleted accounts and profile updates
// take effect immediately, with no stale claims baked into the token.
type UserFetcher interface {
	FetchByID(ctx context.Context, id string) (*models.User, error)
}

// Verifier validates bearer tokens and resolves them to users.
type Verifier struct {
	Tokens *token.Issuer
	Users  UserFetcher
	Log    *zap.Logger
}

// NewVerifier builds a Verifier.
func NewVerifier(tokens *token.Issuer, users UserFetcher, logger *zap.Logger) *Verifier {
	return &Verifier{Tokens: tokens, Users: users, Log: logger}
}

// CurrentUser returns the authenticated user & "found?" flag.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

// WithTestUser injects a user into the request context, bypassing token
// verification. Only for handler tests.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// RequireSignedIn rejects requests without a valid bearer token. A token
// whose subject no longer resolves to a user fails closed with the same
// 401 as a bad signature.
func (v *Verifier) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			unauthorized(w)
			return
		}

		userID, err := v.Tokens.Parse(raw)
		if err != nil {
			unauthorized(w)
			return
		}

		u, err := v.Users.FetchByID(r.Context(), userID)
		if err != nil {
			v.Log.Debug("bearer token resolved to no user",
				zap.String("user_id", userID),
				zap.Error(err))
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"Not authorized"}`))
}
