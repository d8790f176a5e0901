package userstore_test

import (
	"errors"
	"testing"
	"time"

	userstore "github.com/askfield/askfield/internal/app/store/users"
	"github.com/askfield/askfield/internal/app/system/verify"
	"github.com/askfield/askfield/internal/domain/models"
	"github.com/askfield/askfield/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		FirstName:    "Amina",
		LastName:     "Diallo",
		Email:        "  Amina@Example.COM ",
		Role:         models.RoleParticipant,
		PasswordHash: "x",
	}

	created, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "amina@example.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.IsVerified {
		t.Error("new user should not be verified")
	}
	if created.ProfileCompleted {
		t.Error("new user should not have a completed profile")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		FirstName:    "First",
		LastName:     "User",
		Email:        "dup@example.com",
		Role:         models.RoleContributor,
		PasswordHash: "x",
	}
	if _, err := store.Create(ctx, user); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	user.Email = "DUP@example.com"
	if _, err := store.Create(ctx, user); !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FirstName:    "Bad",
		LastName:     "Role",
		Email:        "badrole@example.com",
		Role:         "admin",
		PasswordHash: "x",
	})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_ConsumeVerificationToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName:    "Vera",
		LastName:     "Fied",
		Email:        "vera@example.com",
		Role:         models.RoleParticipant,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	token, err := verify.NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	digest := verify.Digest(token)
	expiry := time.Now().UTC().Add(verify.DefaultExpiry)

	if err := store.SetVerificationToken(ctx, created.ID, digest, expiry); err != nil {
		t.Fatalf("SetVerificationToken failed: %v", err)
	}

	// Wrong digest does not consume.
	if _, err := store.ConsumeVerificationToken(ctx, verify.Digest("other")); !errors.Is(err, userstore.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for wrong digest, got %v", err)
	}

	u, err := store.ConsumeVerificationToken(ctx, digest)
	if err != nil {
		t.Fatalf("ConsumeVerificationToken failed: %v", err)
	}
	if !u.IsVerified {
		t.Error("expected user to be verified")
	}
	if u.VerificationTokenHash != nil {
		t.Error("expected token hash to be cleared")
	}

	// Single use.
	if _, err := store.ConsumeVerificationToken(ctx, digest); !errors.Is(err, userstore.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid on reuse, got %v", err)
	}
}

func TestStore_ConsumeVerificationToken_Expired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName:    "Ed",
		LastName:     "Expired",
		Email:        "expired@example.com",
		Role:         models.RoleContributor,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	digest := verify.Digest("stale-token")
	if err := store.SetVerificationToken(ctx, created.ID, digest, time.Now().UTC().Add(-time.Minute)); err != nil {
		t.Fatalf("SetVerificationToken failed: %v", err)
	}

	if _, err := store.ConsumeVerificationToken(ctx, digest); !errors.Is(err, userstore.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestStore_CompleteProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName:    "Carl",
		LastName:     "Contrib",
		Email:        "carl@example.com",
		Role:         models.RoleContributor,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u, err := store.CompleteProfile(ctx, created.ID, userstore.ProfileCompletion{
		PhoneNumber:      "+15551234567",
		Gender:           "male",
		DateOfBirth:      "1990-04-01",
		IdentityDocument: "passport.pdf",
		ContributorProfile: &models.ContributorProfile{
			Expertise: "agronomy",
			Bio:       "Field researcher",
		},
	})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	if !u.ProfileCompleted {
		t.Error("expected profile_completed to be set")
	}
	if u.ContributorProfile == nil || u.ContributorProfile.Expertise != "agronomy" {
		t.Error("contributor profile not persisted")
	}
	if u.ParticipantProfile != nil {
		t.Error("participant profile should not be set for a contributor")
	}
}

func TestStore_CompleteProfile_EmptyOptionalsPreserved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName:    "Keep",
		LastName:     "Phone",
		Email:        "keepphone@example.com",
		Role:         models.RoleParticipant,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	phone := "+15550001111"
	if _, err := store.ApplyProfileUpdate(ctx, created.ID, userstore.ProfileUpdate{
		PhoneNumber: &phone,
	}); err != nil {
		t.Fatalf("ApplyProfileUpdate failed: %v", err)
	}

	u, err := store.CompleteProfile(ctx, created.ID, userstore.ProfileCompletion{
		Gender:           "female",
		DateOfBirth:      "1993-02-11",
		IdentityDocument: "id.pdf",
	})
	if err != nil {
		t.Fatalf("CompleteProfile failed: %v", err)
	}
	if u.PhoneNumber != phone {
		t.Errorf("phoneNumber = %q, want earlier value preserved", u.PhoneNumber)
	}
	if !u.ProfileCompleted {
		t.Error("expected profile_completed to be set")
	}
}

func TestStore_ApplyProfileUpdate_PartialFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName:    "Old",
		LastName:     "Name",
		Email:        "update@example.com",
		Role:         models.RoleParticipant,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first := "New"
	u, err := store.ApplyProfileUpdate(ctx, created.ID, userstore.ProfileUpdate{
		FirstName: &first,
	})
	if err != nil {
		t.Fatalf("ApplyProfileUpdate failed: %v", err)
	}
	if u.FirstName != "New" {
		t.Errorf("first name = %q, want New", u.FirstName)
	}
	if u.LastName != "Name" {
		t.Errorf("last name changed unexpectedly: %q", u.LastName)
	}
}

func TestFetcher_FetchByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FirstName:    "Fetch",
		LastName:     "Me",
		Email:        "fetch@example.com",
		Role:         models.RoleParticipant,
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u, err := fetcher.FetchByID(ctx, created.ID.Hex())
	if err != nil {
		t.Fatalf("FetchByID failed: %v", err)
	}
	if u.Email != "fetch@example.com" {
		t.Errorf("unexpected user: %q", u.Email)
	}

	if _, err := fetcher.FetchByID(ctx, "not-a-hex-id"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}
}
