// internal/app/system/googleauth/googleauth.go
package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Claim holds the identity fields extracted from Google after a successful
// authorization-code exchange.
type Claim struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Exchanger trades an OAuth authorization code for verified identity claims.
type Exchanger interface {
	Exchange(ctx context.Context, code string) (*Claim, error)
}

// Google is the production Exchanger backed by Google's OAuth2 endpoints.
type Google struct {
	cfg *oauth2.Config
}

func New(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

// IsConfigured returns true if client credentials are present.
func (g *Google) IsConfigured() bool {
	return g.cfg.ClientID != "" && g.cfg.ClientSecret != ""
}

// Exchange redeems the authorization code and fetches the user's profile
// from Google's userinfo endpoint.
func (g *Google) Exchange(ctx context.Context, code string) (*Claim, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch user info: unexpected status %d", resp.StatusCode)
	}

	var claim Claim
	if err := json.NewDecoder(resp.Body).Decode(&claim); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if claim.Email == "" {
		return nil, fmt.Errorf("user info missing email")
	}
	return &claim, nil
}
