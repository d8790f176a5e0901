// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is fixed at registration and never changes afterwards.
type Role string

const (
	RoleContributor Role = "contributor"
	RoleParticipant Role = "participant"
)

// Valid reports whether r is one of the two platform roles.
func (r Role) Valid() bool {
	return r == RoleContributor || r == RoleParticipant
}

// User represents contributors and participants.
//
// NOTE:
//   - VerificationTokenHash and VerificationTokenExpiry are both set or
//     both nil. Only the SHA-256 digest of a verification token is stored;
//     the plaintext lives solely in the emailed link.
//   - PasswordHash is never empty. OAuth-created accounts carry a random
//     placeholder hash that no human can log in with.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"firstName"`
	LastName  string             `bson:"last_name" json:"lastName"`
	Email     string             `bson:"email" json:"email"` // lowercased, unique
	Role      Role               `bson:"role" json:"role"`

	PasswordHash string `bson:"password_hash" json:"-"`

	IsVerified              bool       `bson:"is_verified" json:"isVerified"`
	VerificationTokenHash   *string    `bson:"verification_token_hash,omitempty" json:"-"`
	VerificationTokenExpiry *time.Time `bson:"verification_token_expiry,omitempty" json:"-"`

	ProfileCompleted bool `bson:"profile_completed" json:"profileCompleted"`

	PhoneNumber        string `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Gender             string `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth        string `bson:"date_of_birth,omitempty" json:"dateOfBirth,omitempty"` // "2006-01-02"
	IdentityDocument   string `bson:"identity_document,omitempty" json:"identityDocument,omitempty"`
	SupportingDocument string `bson:"supporting_document,omitempty" json:"supportingDocument,omitempty"`

	// Exactly one of these is ever populated, matching Role.
	ContributorProfile *ContributorProfile `bson:"contributor_profile,omitempty" json:"contributorProfile,omitempty"`
	ParticipantProfile *ParticipantProfile `bson:"participant_profile,omitempty" json:"participantProfile,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ContributorProfile holds the loosely structured contributor fields.
// All of them are optional.
type ContributorProfile struct {
	Expertise          string `bson:"expertise,omitempty" json:"expertise,omitempty"`
	Bio                string `bson:"bio,omitempty" json:"bio,omitempty"`
	CountryOfResidence string `bson:"country_of_residence,omitempty" json:"countryOfResidence,omitempty"`
	OrganizationName   string `bson:"organization_name,omitempty" json:"organizationName,omitempty"`
	JobTitle           string `bson:"job_title,omitempty" json:"jobTitle,omitempty"`
	OrganizationType   string `bson:"organization_type,omitempty" json:"organizationType,omitempty"`
}

// ParticipantProfile holds the demographic/employment/availability section
// for participants. Every field except Interests and LinkedInProfile is
// mandatory once a participant submits the section; that rule is enforced
// by the profile-completion handler, not here.
type ParticipantProfile struct {
	Interests                 []string `bson:"interests,omitempty" json:"interests,omitempty"`
	About                     string   `bson:"about" json:"about"`
	Goals                     string   `bson:"goals" json:"goals"`
	CountryOfResidence        string   `bson:"country_of_residence" json:"countryOfResidence"`
	CountryOfBirth            string   `bson:"country_of_birth" json:"countryOfBirth"`
	PlaceOfBirth              string   `bson:"place_of_birth" json:"placeOfBirth"`
	EthnicGroup               string   `bson:"ethnic_group" json:"ethnicGroup"`
	Language                  string   `bson:"language" json:"language"`
	LanguageFluent            []string `bson:"language_fluent" json:"languageFluent"`
	RegionalDialect           string   `bson:"regional_dialect" json:"regionalDialect"`
	EducationLevel            string   `bson:"education_level" json:"educationLevel"`
	EducationCurrentStatus    string   `bson:"education_current_status" json:"educationCurrentStatus"`
	EducationFieldOfStudy     string   `bson:"education_field_of_study" json:"educationFieldOfStudy"`
	EducationYearCompleted    string   `bson:"education_year_completed" json:"educationYearCompleted"`
	EmploymentStatus          string   `bson:"employment_status" json:"employmentStatus"`
	EmploymentYearsExperience int      `bson:"employment_years_experience" json:"employmentYearsExperience"`
	EmploymentSector          string   `bson:"employment_sector" json:"employmentSector"`
	EmploymentIndustry        string   `bson:"employment_industry" json:"employmentIndustry"`
	EmploymentJobTitle        string   `bson:"employment_job_title" json:"employmentJobTitle"`
	LinkedInProfile           string   `bson:"linkedin_profile,omitempty" json:"linkedInProfile,omitempty"`
	AvailabilityToParticipate string   `bson:"availability_to_participate" json:"availabilityToParticipate"`
	ParticipateHoursPerWeek   int      `bson:"participate_hours_per_week" json:"participateHoursPerWeek"`
	Currency                  string   `bson:"currency" json:"currency"`
}
