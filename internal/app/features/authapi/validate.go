// internal/app/features/authapi/validate.go
package authapi

import (
	"fmt"
	"sort"

	"github.com/askfield/askfield/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 200)),
		validation.Field(&r.Role, validation.Required,
			validation.In(string(models.RoleContributor), string(models.RoleParticipant))),
	)
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (r resendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (r completeProfileRequest) Validate() error {
	errs := validation.Errors{}
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Gender, validation.Required),
		validation.Field(&r.DateOfBirth, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.IdentityDocument, validation.Required),
	); err != nil {
		verrs, ok := err.(validation.Errors)
		if !ok {
			return err
		}
		for k, v := range verrs {
			errs[k] = v
		}
	}
	if r.ParticipantProfile != nil {
		if err := validateParticipant(r.ParticipantProfile); err != nil {
			errs["participantProfile"] = err
		}
	}
	return errs.Filter()
}

// validateParticipant enforces the required participant profile fields.
// Contributor profile fields are all optional, so there is no counterpart.
func validateParticipant(p *models.ParticipantProfile) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.About, validation.Required),
		validation.Field(&p.Goals, validation.Required),
		validation.Field(&p.CountryOfResidence, validation.Required),
		validation.Field(&p.CountryOfBirth, validation.Required),
		validation.Field(&p.PlaceOfBirth, validation.Required),
		validation.Field(&p.EthnicGroup, validation.Required),
		validation.Field(&p.Language, validation.Required),
		validation.Field(&p.LanguageFluent, validation.Required),
		validation.Field(&p.RegionalDialect, validation.Required),
		validation.Field(&p.EducationLevel, validation.Required),
		validation.Field(&p.EducationCurrentStatus, validation.Required),
		validation.Field(&p.EducationFieldOfStudy, validation.Required),
		validation.Field(&p.EducationYearCompleted, validation.Required),
		validation.Field(&p.EmploymentStatus, validation.Required),
		validation.Field(&p.EmploymentYearsExperience, validation.Min(0)),
		validation.Field(&p.EmploymentSector, validation.Required),
		validation.Field(&p.EmploymentIndustry, validation.Required),
		validation.Field(&p.EmploymentJobTitle, validation.Required),
		validation.Field(&p.AvailabilityToParticipate, validation.Required),
		validation.Field(&p.ParticipateHoursPerWeek, validation.Required, validation.Min(1)),
		validation.Field(&p.Currency, validation.Required),
	)
}

// flattenErrors turns an ozzo validation error into a stable, sorted list of
// "field: problem" strings for the response envelope.
func flattenErrors(err error) []string {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return []string{err.Error()}
	}

	var out []string
	for field, ferr := range verrs {
		if nested, ok := ferr.(validation.Errors); ok {
			for sub, serr := range nested {
				out = append(out, fmt.Sprintf("%s.%s: %s", field, sub, serr.Error()))
			}
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", field, ferr.Error()))
	}
	sort.Strings(out)
	return out
}
