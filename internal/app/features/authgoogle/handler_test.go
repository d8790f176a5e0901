// internal/app/features/authgoogle/handler_test.go
package authgoogle_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/askfield/askfield/internal/app/features/authgoogle"
	"github.com/askfield/askfield/internal/app/system/googleauth"
	"github.com/askfield/askfield/internal/app/system/token"
	"github.com/askfield/askfield/internal/domain/models"
	"github.com/askfield/askfield/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, exchanger googleauth.Exchanger) (*authgoogle.Handler, *testutil.FakeUserStore) {
	t.Helper()
	users := testutil.NewFakeUserStore()
	tokens, err := token.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return authgoogle.NewHandler(exchanger, users, tokens, zap.NewNop()), users
}

func post(t *testing.T, h *authgoogle.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	h.HandleGoogleLogin(rec, req)
	return rec
}

func TestGoogleLogin_NewUser(t *testing.T) {
	h, users := newTestHandler(t, &testutil.FakeExchanger{
		Claim: &googleauth.Claim{Email: "new@example.com", GivenName: "Nia", FamilyName: "Okafor"},
	})

	rec := post(t, h, map[string]any{"code": "auth-code", "role": "contributor"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env["token"] == "" || env["token"] == nil {
		t.Error("expected a token")
	}
	if env["isNewUser"] != true {
		t.Error("expected isNewUser flag")
	}

	u, err := users.GetByEmail(t.Context(), "new@example.com")
	if err != nil {
		t.Fatalf("account not created: %v", err)
	}
	if !u.IsVerified {
		t.Error("google accounts should be created verified")
	}
	if u.Role != models.RoleContributor {
		t.Errorf("role = %q, want contributor", u.Role)
	}
	if u.PasswordHash == "" {
		t.Error("expected a password placeholder hash")
	}
}

func TestGoogleLogin_NameFallbacks(t *testing.T) {
	h, users := newTestHandler(t, &testutil.FakeExchanger{
		Claim: &googleauth.Claim{Email: "blank@example.com"},
	})

	rec := post(t, h, map[string]any{"code": "auth-code", "role": "participant"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	u, err := users.GetByEmail(t.Context(), "blank@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if u.FirstName != "Google" || u.LastName != "User" {
		t.Errorf("names = %q %q, want fallback Google User", u.FirstName, u.LastName)
	}
}

func TestGoogleLogin_ExistingUserKeepsRole(t *testing.T) {
	h, users := newTestHandler(t, &testutil.FakeExchanger{
		Claim: &googleauth.Claim{Email: "existing@example.com", GivenName: "Eve"},
	})
	users.Add(models.User{
		Email:      "existing@example.com",
		FirstName:  "Eve",
		Role:       models.RoleParticipant,
		IsVerified: true,
	})

	// The request asks for contributor; the stored role wins.
	rec := post(t, h, map[string]any{"code": "auth-code", "role": "contributor"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env["isNewUser"] == true {
		t.Error("existing account reported as new")
	}
	user, _ := env["user"].(map[string]any)
	if user["role"] != "participant" {
		t.Errorf("role = %v, want the stored participant role", user["role"])
	}

	u, _ := users.GetByEmail(t.Context(), "existing@example.com")
	if u.Role != models.RoleParticipant {
		t.Error("stored role was overwritten")
	}
}

func TestGoogleLogin_ExchangeFailure(t *testing.T) {
	h, users := newTestHandler(t, &testutil.FakeExchanger{
		Err: errors.New("upstream says no"),
	})

	rec := post(t, h, map[string]any{"code": "bad-code", "role": "participant"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	// No partial account may exist after a failed exchange.
	if _, err := users.GetByEmail(t.Context(), "new@example.com"); err == nil {
		t.Error("account created despite failed exchange")
	}
}

func TestGoogleLogin_Validation(t *testing.T) {
	h, _ := newTestHandler(t, &testutil.FakeExchanger{
		Claim: &googleauth.Claim{Email: "x@example.com"},
	})

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing code", map[string]any{"role": "participant"}},
		{"missing role", map[string]any{"code": "auth-code"}},
		{"invalid role", map[string]any{"code": "auth-code", "role": "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
