// Package verify mints and digests email-verification tokens.
//
// A token is 32 random bytes, hex encoded, handed to the user inside the
// verification link. Only its SHA-256 digest is persisted on the user record
// together with an expiry; consumption matches the digest of a presented
// token against the store. Wrong, expired, and already-used tokens are
// indistinguishable to the caller.
package verify

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// TokenLength is the raw token size in bytes (64 hex chars on the wire).
	TokenLength = 32
	// DefaultExpiry is how long a verification link stays valid.
	DefaultExpiry = 24 * time.Hour
	// ResendCooldown is the minimum age of the outstanding token before a
	// replacement may be issued.
	ResendCooldown = time.Minute
)

// NewToken generates a fresh plaintext verification token.
func NewToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Digest returns the hex SHA-256 of a plaintext token. The digest is what
// gets stored and what lookups match on; the plaintext is never persisted.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
