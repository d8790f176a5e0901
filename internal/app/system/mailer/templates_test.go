// internal/app/system/mailer/templates_test.go
package mailer

import (
	"strings"
	"testing"
)

func TestBuildVerificationEmail(t *testing.T) {
	e := BuildVerificationEmail(VerificationEmailData{
		SiteName:  "AskField",
		FirstName: "Amina",
		Role:      "participant",
		VerifyURL: "https://app.example.com/verify-email?token=abc123",
		ExpiresIn: "24 hours",
	})

	if !strings.Contains(e.Subject, "Verify Your Email") {
		t.Errorf("subject = %q, want verification subject", e.Subject)
	}
	for _, want := range []string{"Amina", "participant", "https://app.example.com/verify-email?token=abc123", "24 hours"} {
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
		if !strings.Contains(e.HTMLBody, want) {
			t.Errorf("html body missing %q", want)
		}
	}
	if !strings.Contains(e.HTMLBody, "<!DOCTYPE html>") {
		t.Error("html body is not an HTML document")
	}
}

func TestBuildWelcomeEmail(t *testing.T) {
	e := BuildWelcomeEmail(WelcomeEmailData{
		SiteName:  "AskField",
		FirstName: "Noor",
		LoginURL:  "https://app.example.com/login",
	})

	if !strings.Contains(e.Subject, "Welcome") {
		t.Errorf("subject = %q, want welcome subject", e.Subject)
	}
	for _, want := range []string{"Noor", "https://app.example.com/login"} {
		if !strings.Contains(e.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
		if !strings.Contains(e.HTMLBody, want) {
			t.Errorf("html body missing %q", want)
		}
	}
}
