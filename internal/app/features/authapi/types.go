// internal/app/features/authapi/types.go
package authapi

import (
	"github.com/askfield/askfield/internal/domain/models"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resendRequest struct {
	Email string `json:"email"`
}

type completeProfileRequest struct {
	PhoneNumber        string                     `json:"phoneNumber"`
	Gender             string                     `json:"gender"`
	DateOfBirth        string                     `json:"dateOfBirth"`
	IdentityDocument   string                     `json:"identityDocument"`
	SupportingDocument string                     `json:"supportingDocument"`
	ContributorProfile *models.ContributorProfile `json:"contributorProfile"`
	ParticipantProfile *models.ParticipantProfile `json:"participantProfile"`
}

// updateProfileRequest uses pointers so omitted fields are left unchanged.
type updateProfileRequest struct {
	FirstName          *string                    `json:"firstName"`
	LastName           *string                    `json:"lastName"`
	PhoneNumber        *string                    `json:"phoneNumber"`
	Gender             *string                    `json:"gender"`
	ContributorProfile *models.ContributorProfile `json:"contributorProfile"`
	ParticipantProfile *models.ParticipantProfile `json:"participantProfile"`
}

// userView is the JSON projection of a user returned to clients.
type userView struct {
	ID                 string                     `json:"id"`
	FirstName          string                     `json:"firstName"`
	LastName           string                     `json:"lastName"`
	Email              string                     `json:"email"`
	Role               models.Role                `json:"role"`
	IsVerified         bool                       `json:"isVerified"`
	ProfileCompleted   bool                       `json:"profileCompleted"`
	PhoneNumber        string                     `json:"phoneNumber,omitempty"`
	Gender             string                     `json:"gender,omitempty"`
	DateOfBirth        string                     `json:"dateOfBirth,omitempty"`
	IdentityDocument   string                     `json:"identityDocument,omitempty"`
	SupportingDocument string                     `json:"supportingDocument,omitempty"`
	ContributorProfile *models.ContributorProfile `json:"contributorProfile,omitempty"`
	ParticipantProfile *models.ParticipantProfile `json:"participantProfile,omitempty"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:                 u.ID.Hex(),
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Role:               u.Role,
		IsVerified:         u.IsVerified,
		ProfileCompleted:   u.ProfileCompleted,
		PhoneNumber:        u.PhoneNumber,
		Gender:             u.Gender,
		DateOfBirth:        u.DateOfBirth,
		IdentityDocument:   u.IdentityDocument,
		SupportingDocument: u.SupportingDocument,
		ContributorProfile: u.ContributorProfile,
		ParticipantProfile: u.ParticipantProfile,
	}
}
