package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/askfield/askfield/internal/app/system/normalize"
	"github.com/askfield/askfield/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrTokenInvalid is returned when a verification token does not match any
	// unexpired pending verification.
	ErrTokenInvalid = errors.New("verification token invalid or expired")
	errBadRole      = errors.New(`role must be "contributor"|"participant"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new user after normalizing core fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FirstName = normalize.Name(u.FirstName)
	u.LastName = normalize.Name(u.LastName)
	u.Email = normalize.Email(u.Email)

	if !u.Role.Valid() {
		return models.User{}, errBadRole
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetVerificationToken stores a new token digest and expiry on the user,
// replacing any previous pending token.
func (s *Store) SetVerificationToken(ctx context.Context, id primitive.ObjectID, digest string, expiresAt time.Time) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"verification_token_hash":   digest,
			"verification_token_expiry": expiresAt,
			"updated_at":                time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeVerificationToken atomically marks the matching user verified and
// clears the pending token. The token is single-use: a second call with the
// same digest returns ErrTokenInvalid.
func (s *Store) ConsumeVerificationToken(ctx context.Context, digest string) (*models.User, error) {
	filter := bson.M{
		"verification_token_hash":   digest,
		"verification_token_expiry": bson.M{"$gt": time.Now().UTC()},
	}
	update := bson.M{
		"$set": bson.M{
			"is_verified": true,
			"updated_at":  time.Now().UTC(),
		},
		"$unset": bson.M{
			"verification_token_hash":   "",
			"verification_token_expiry": "",
		},
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return &u, nil
}

// ProfileCompletion holds the fields written when a user finishes the
// second registration stage.
type ProfileCompletion struct {
	PhoneNumber        string
	Gender             string
	DateOfBirth        string
	IdentityDocument   string
	SupportingDocument string
	ContributorProfile *models.ContributorProfile
	ParticipantProfile *models.ParticipantProfile
}

// CompleteProfile writes the stage-two fields and flips profile_completed.
// Optional fields left empty are not written, so they cannot clobber an
// earlier value.
func (s *Store) CompleteProfile(ctx context.Context, id primitive.ObjectID, p ProfileCompletion) (*models.User, error) {
	set := bson.M{
		"gender":            p.Gender,
		"date_of_birth":     p.DateOfBirth,
		"identity_document": p.IdentityDocument,
		"profile_completed": true,
		"updated_at":        time.Now().UTC(),
	}
	if p.PhoneNumber != "" {
		set["phone_number"] = p.PhoneNumber
	}
	if p.SupportingDocument != "" {
		set["supporting_document"] = p.SupportingDocument
	}
	if p.ContributorProfile != nil {
		set["contributor_profile"] = p.ContributorProfile
	}
	if p.ParticipantProfile != nil {
		set["participant_profile"] = p.ParticipantProfile
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ProfileUpdate holds the optional fields a signed-in user may change.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	FirstName          *string
	LastName           *string
	PhoneNumber        *string
	Gender             *string
	ContributorProfile *models.ContributorProfile
	ParticipantProfile *models.ParticipantProfile
}

// ApplyProfileUpdate applies the provided fields and returns the updated user.
func (s *Store) ApplyProfileUpdate(ctx context.Context, id primitive.ObjectID, p ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.FirstName != nil {
		set["first_name"] = normalize.Name(*p.FirstName)
	}
	if p.LastName != nil {
		set["last_name"] = normalize.Name(*p.LastName)
	}
	if p.PhoneNumber != nil {
		set["phone_number"] = *p.PhoneNumber
	}
	if p.Gender != nil {
		set["gender"] = *p.Gender
	}
	if p.ContributorProfile != nil {
		set["contributor_profile"] = p.ContributorProfile
	}
	if p.ParticipantProfile != nil {
		set["participant_profile"] = p.ParticipantProfile
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// EnsureIndexes creates the indexes the store relies on. Idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "verification_token_hash", Value: 1}},
			Options: options.Index().SetName("idx_users_verification_token").SetSparse(true),
		},
	})
	return err
}
