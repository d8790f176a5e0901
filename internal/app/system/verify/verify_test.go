package verify

import (
	"encoding/hex"
	"testing"
)

func TestNewToken(t *testing.T) {
	tok, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	if len(tok) != TokenLength*2 {
		t.Errorf("token length = %d, want %d hex chars", len(tok), TokenLength*2)
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Errorf("token %q is not hex: %v", tok, err)
	}

	other, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	if tok == other {
		t.Error("two generated tokens are identical")
	}
}

func TestDigest(t *testing.T) {
	// Deterministic: the same plaintext always maps to the same digest so
	// a presented token can be matched against the stored value.
	a := Digest("abc123")
	b := Digest("abc123")
	if a != b {
		t.Errorf("Digest not deterministic: %q vs %q", a, b)
	}
	if a == "abc123" {
		t.Error("digest equals plaintext")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64", len(a))
	}
	if Digest("abc124") == a {
		t.Error("different tokens share a digest")
	}
}
