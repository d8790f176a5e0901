package testutil

import (
	"context"
	"sync"
	"time"

	userstore "github.com/askfield/askfield/internal/app/store/users"
	"github.com/askfield/askfield/internal/app/system/googleauth"
	"github.com/askfield/askfield/internal/app/system/mailer"
	"github.com/askfield/askfield/internal/app/system/normalize"
	"github.com/askfield/askfield/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FakeUserStore is an in-memory user store for handler tests. It mirrors the
// Mongo store's error contract.
type FakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

// Add seeds a user directly, bypassing Create's normalization.
func (f *FakeUserStore) Add(u models.User) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == primitive.NilObjectID {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = &u
	return u
}

// Get returns a copy of the stored user, for assertions.
func (f *FakeUserStore) Get(id primitive.ObjectID) (models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, false
	}
	return *u, true
}

func (f *FakeUserStore) Create(ctx context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u.Email = normalize.Email(u.Email)
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return models.User{}, userstore.ErrDuplicateEmail
		}
	}

	u.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	f.users[u.ID] = &u
	return u, nil
}

func (f *FakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email = normalize.Email(email)
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userstore.ErrNotFound
}

func (f *FakeUserStore) FetchByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, userstore.ErrNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[oid]
	if !ok {
		return nil, userstore.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *FakeUserStore) SetVerificationToken(ctx context.Context, id primitive.ObjectID, digest string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return userstore.ErrNotFound
	}
	u.VerificationTokenHash = &digest
	exp := expiresAt
	u.VerificationTokenExpiry = &exp
	return nil
}

func (f *FakeUserStore) ConsumeVerificationToken(ctx context.Context, digest string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.VerificationTokenHash == nil || *u.VerificationTokenHash != digest {
			continue
		}
		if u.VerificationTokenExpiry == nil || !u.VerificationTokenExpiry.After(time.Now().UTC()) {
			continue
		}
		u.IsVerified = true
		u.VerificationTokenHash = nil
		u.VerificationTokenExpiry = nil
		cp := *u
		return &cp, nil
	}
	return nil, userstore.ErrTokenInvalid
}

func (f *FakeUserStore) CompleteProfile(ctx context.Context, id primitive.ObjectID, p userstore.ProfileCompletion) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, userstore.ErrNotFound
	}
	if p.PhoneNumber != "" {
		u.PhoneNumber = p.PhoneNumber
	}
	u.Gender = p.Gender
	u.DateOfBirth = p.DateOfBirth
	u.IdentityDocument = p.IdentityDocument
	if p.SupportingDocument != "" {
		u.SupportingDocument = p.SupportingDocument
	}
	if p.ContributorProfile != nil {
		u.ContributorProfile = p.ContributorProfile
	}
	if p.ParticipantProfile != nil {
		u.ParticipantProfile = p.ParticipantProfile
	}
	u.ProfileCompleted = true
	cp := *u
	return &cp, nil
}

func (f *FakeUserStore) ApplyProfileUpdate(ctx context.Context, id primitive.ObjectID, p userstore.ProfileUpdate) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, userstore.ErrNotFound
	}
	if p.FirstName != nil {
		u.FirstName = normalize.Name(*p.FirstName)
	}
	if p.LastName != nil {
		u.LastName = normalize.Name(*p.LastName)
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.ContributorProfile != nil {
		u.ContributorProfile = p.ContributorProfile
	}
	if p.ParticipantProfile != nil {
		u.ParticipantProfile = p.ParticipantProfile
	}
	cp := *u
	return &cp, nil
}

// FakeMailer records outgoing mail. Set Err to simulate delivery failure.
type FakeMailer struct {
	mu   sync.Mutex
	Err  error
	sent []mailer.Email
}

func (f *FakeMailer) Send(ctx context.Context, e mailer.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.sent = append(f.sent, e)
	return nil
}

// Sent returns a copy of the recorded messages.
func (f *FakeMailer) Sent() []mailer.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mailer.Email, len(f.sent))
	copy(out, f.sent)
	return out
}

// FakeExchanger returns a canned claim or error for OAuth code exchanges.
type FakeExchanger struct {
	Claim *googleauth.Claim
	Err   error
}

func (f *FakeExchanger) Exchange(ctx context.Context, code string) (*googleauth.Claim, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Claim, nil
}
