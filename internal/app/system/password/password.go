// Package password wraps bcrypt hashing and verification for local
// credentials. Hashing happens exactly once per password-set event; callers
// must never pass an already-hashed value back through Hash.
package password

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor for all stored credentials.
const Cost = 10

// ErrEmptyPassword is returned when an empty plaintext is hashed.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hash derives a salted bcrypt digest from a plaintext password.
func Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// digest (corrupted storage, non-bcrypt value) verifies as false rather
// than erroring, so callers get uniform invalid-credentials behavior.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// RandomHash returns a bcrypt digest of a throwaway random value. It fills
// the password slot of OAuth-created accounts, which have no local password
// but must never store an empty hash.
func RandomHash() string {
	h, err := Hash(uuid.NewString())
	if err != nil {
		// uuid strings are never empty and bcrypt only fails on
		// impossible cost values, so this cannot happen in practice.
		panic("password: random hash failed: " + err.Error())
	}
	return h
}
