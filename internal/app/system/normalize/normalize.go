// Package normalize canonicalizes user-supplied identity fields before they
// reach the store, so lookups and uniqueness checks behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address. The store's unique index is
// built over the normalized form, which is what makes email uniqueness
// case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string so "Participant" and
// "participant" are the same role.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
