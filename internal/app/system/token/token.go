// Package token issues and validates the signed session credential handed
// out at login. The credential is a compact HS256 JWT binding a user id to
// a 30-day expiry; there is no refresh or rotation.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session credential lifetime.
const DefaultTTL = 30 * 24 * time.Hour

var (
	// ErrInvalidToken covers bad signatures, wrong algorithms, expired
	// credentials, and malformed input. Callers treat all of them alike.
	ErrInvalidToken = errors.New("invalid or expired session token")
	// ErrEmptySecret is returned when an issuer is built without a secret.
	ErrEmptySecret = errors.New("session token secret must not be empty")
)

// Issuer signs and parses session tokens with a server-held secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds an Issuer. A ttl of 0 or less falls back to DefaultTTL.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a signed token whose subject is the user id.
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates a presented token and returns the embedded user id.
// Tokens signed with any algorithm other than HS256 are rejected outright,
// which closes the alg-substitution hole.
func (i *Issuer) Parse(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
