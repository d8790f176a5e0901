// Package htmlsanitize strips markup from free-text profile fields (bio,
// about, goals) before they are persisted. Profiles are served back to
// browsers by the frontend, so stored text must never smuggle HTML.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML element and attribute from s, returning the
// remaining plain text. Entities introduced by the sanitizer are unescaped
// so "A & B" round-trips unchanged.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Slice sanitizes each element in place and returns the slice.
func Slice(ss []string) []string {
	for i, s := range ss {
		ss[i] = Text(s)
	}
	return ss
}
