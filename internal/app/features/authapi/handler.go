// internal/app/features/authapi/handler.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	userstore "github.com/askfield/askfield/internal/app/store/users"
	"github.com/askfield/askfield/internal/app/system/auth"
	"github.com/askfield/askfield/internal/app/system/htmlsanitize"
	"github.com/askfield/askfield/internal/app/system/mailer"
	"github.com/askfield/askfield/internal/app/system/normalize"
	"github.com/askfield/askfield/internal/app/system/password"
	"github.com/askfield/askfield/internal/app/system/timeouts"
	"github.com/askfield/askfield/internal/app/system/token"
	"github.com/askfield/askfield/internal/app/system/verify"
	"github.com/askfield/askfield/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserStore is the persistence surface the handlers need. *userstore.Store
// satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetVerificationToken(ctx context.Context, id primitive.ObjectID, digest string, expiresAt time.Time) error
	ConsumeVerificationToken(ctx context.Context, digest string) (*models.User, error)
	CompleteProfile(ctx context.Context, id primitive.ObjectID, p userstore.ProfileCompletion) (*models.User, error)
	ApplyProfileUpdate(ctx context.Context, id primitive.ObjectID, p userstore.ProfileUpdate) (*models.User, error)
}

type Handler struct {
	Users       UserStore
	Mail        mailer.Mailer
	Tokens      *token.Issuer
	Log         *zap.Logger
	FrontendURL string // base URL for links in emails (e.g., "https://app.askfield.org")
	SiteName    string
	VerifyTTL   time.Duration // verification token lifetime
}

func NewHandler(users UserStore, mail mailer.Mailer, tokens *token.Issuer, frontendURL, siteName string, verifyTTL time.Duration, logger *zap.Logger) *Handler {
	if verifyTTL <= 0 {
		verifyTTL = verify.DefaultExpiry
	}
	return &Handler{
		Users:       users,
		Mail:        mail,
		Tokens:      tokens,
		Log:         logger,
		FrontendURL: frontendURL,
		SiteName:    siteName,
		VerifyTTL:   verifyTTL,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /register                                                               |
| Stage one of registration: creates an unverified account and emails a        |
| verification link. The account cannot log in until verified.                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Role = normalize.Role(req.Role)
	if err := req.Validate(); err != nil {
		writeValidationErrors(w, flattenErrors(err))
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Role:         models.Role(req.Role),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.issueVerification(ctx, &created)

	h.Log.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("role", string(created.Role)))

	view := viewOf(&created)
	writeJSON(w, http.StatusCreated, envelope{
		Success:           true,
		Message:           "Registration successful. Please check your email to verify your account.",
		NeedsVerification: true,
		User:              &view,
	})
}

// issueVerification generates a fresh token, stores its digest, and emails
// the link. Email failures are logged, never surfaced to the client.
func (h *Handler) issueVerification(ctx context.Context, u *models.User) {
	plain, err := verify.NewToken()
	if err != nil {
		h.Log.Error("generate verification token failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		return
	}

	expiry := time.Now().UTC().Add(h.VerifyTTL)
	if err := h.Users.SetVerificationToken(ctx, u.ID, verify.Digest(plain), expiry); err != nil {
		h.Log.Error("store verification token failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		return
	}

	e := mailer.BuildVerificationEmail(mailer.VerificationEmailData{
		SiteName:  h.SiteName,
		FirstName: u.FirstName,
		Role:      string(u.Role),
		VerifyURL: h.FrontendURL + "/verify-email?token=" + plain,
		ExpiresIn: formatDuration(h.VerifyTTL),
	})
	e.To = u.Email
	e.ToName = u.FirstName + " " + u.LastName

	if err := h.Mail.Send(ctx, e); err != nil {
		h.Log.Warn("send verification email failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	if hours <= 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /verify-email/{token}                                                    |
| Consumes the single-use verification token and activates the account.        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	plain := chi.URLParam(r, "token")
	if plain == "" {
		writeError(w, http.StatusBadRequest, "Verification token is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.ConsumeVerificationToken(ctx, verify.Digest(plain))
	if err != nil {
		if errors.Is(err, userstore.ErrTokenInvalid) {
			writeError(w, http.StatusBadRequest, "Verification link is invalid or has expired")
			return
		}
		h.Log.Error("consume verification token failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	e := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		SiteName:  h.SiteName,
		FirstName: u.FirstName,
		LoginURL:  h.FrontendURL + "/login",
	})
	e.To = u.Email
	e.ToName = u.FirstName + " " + u.LastName
	if err := h.Mail.Send(ctx, e); err != nil {
		h.Log.Warn("send welcome email failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
	}

	h.Log.Info("email verified", zap.String("user_id", u.ID.Hex()))

	view := viewOf(u)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Email verified successfully. You can now log in.",
		User:    &view,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                  |
| Verifies credentials and issues a bearer token. Unknown email and wrong      |
| password are indistinguishable to the client.                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationErrors(w, flattenErrors(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !u.IsVerified {
		writeJSON(w, http.StatusForbidden, envelope{
			Success:           false,
			Message:           "Please verify your email before logging in",
			NeedsVerification: true,
		})
		return
	}

	jwt, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", u.ID.Hex()))

	view := viewOf(u)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Token:   jwt,
		User:    &view,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /resend-verification                                                    |
| Re-issues the verification email, replacing the previous token.              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationErrors(w, flattenErrors(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No account found with this email")
			return
		}
		h.Log.Error("resend lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Resend failed")
		return
	}

	if u.IsVerified {
		writeError(w, http.StatusBadRequest, "This account is already verified")
		return
	}

	// The previous token's issue time is its expiry minus the TTL; refuse a
	// resend within the cooldown window of that moment.
	if u.VerificationTokenExpiry != nil {
		issuedAt := u.VerificationTokenExpiry.Add(-h.VerifyTTL)
		if time.Since(issuedAt) < verify.ResendCooldown {
			writeError(w, http.StatusTooManyRequests, "Please wait a minute before requesting another email")
			return
		}
	}

	h.issueVerification(ctx, u)

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Verification email sent. Please check your inbox.",
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /me                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	view := viewOf(u)
	writeJSON(w, http.StatusOK, envelope{Success: true, User: &view})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /complete-profile                                                       |
| Stage two of registration: demographic fields plus the role-specific         |
| profile block. Flips profileCompleted on success.                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCompleteProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req completeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Profile blocks for the other role are dropped before validation, so a
	// participant sending a contributor block fails on the missing
	// participant block rather than the stray one.
	contributor, participant := gateProfiles(u.Role, req.ContributorProfile, req.ParticipantProfile)
	req.ContributorProfile = contributor
	req.ParticipantProfile = participant

	if err := req.Validate(); err != nil {
		writeValidationErrors(w, flattenErrors(err))
		return
	}
	if u.Role == models.RoleParticipant && req.ParticipantProfile == nil {
		writeValidationErrors(w, []string{"participantProfile: cannot be blank"})
		return
	}

	sanitizeContributor(req.ContributorProfile)
	sanitizeParticipant(req.ParticipantProfile)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Users.CompleteProfile(ctx, u.ID, userstore.ProfileCompletion{
		PhoneNumber:        htmlsanitize.Text(req.PhoneNumber),
		Gender:             htmlsanitize.Text(req.Gender),
		DateOfBirth:        req.DateOfBirth,
		IdentityDocument:   htmlsanitize.Text(req.IdentityDocument),
		SupportingDocument: htmlsanitize.Text(req.SupportingDocument),
		ContributorProfile: req.ContributorProfile,
		ParticipantProfile: req.ParticipantProfile,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("complete profile failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		writeError(w, http.StatusInternalServerError, "Profile update failed")
		return
	}

	h.Log.Info("profile completed", zap.String("user_id", u.ID.Hex()))

	view := viewOf(updated)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Profile completed successfully",
		User:    &view,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /update-profile                                                          |
| Updates the whitelisted mutable fields. Omitted fields are left alone.       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.ContributorProfile, req.ParticipantProfile = gateProfiles(u.Role, req.ContributorProfile, req.ParticipantProfile)

	if req.ParticipantProfile != nil {
		if err := validateParticipant(req.ParticipantProfile); err != nil {
			writeValidationErrors(w, flattenErrors(err))
			return
		}
	}

	sanitizeContributor(req.ContributorProfile)
	sanitizeParticipant(req.ParticipantProfile)

	update := userstore.ProfileUpdate{
		ContributorProfile: req.ContributorProfile,
		ParticipantProfile: req.ParticipantProfile,
	}
	if req.FirstName != nil {
		v := htmlsanitize.Text(*req.FirstName)
		update.FirstName = &v
	}
	if req.LastName != nil {
		v := htmlsanitize.Text(*req.LastName)
		update.LastName = &v
	}
	if req.PhoneNumber != nil {
		v := htmlsanitize.Text(*req.PhoneNumber)
		update.PhoneNumber = &v
	}
	if req.Gender != nil {
		v := htmlsanitize.Text(*req.Gender)
		update.Gender = &v
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Users.ApplyProfileUpdate(ctx, u.ID, update)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("update profile failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		writeError(w, http.StatusInternalServerError, "Profile update failed")
		return
	}

	view := viewOf(updated)
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Profile updated successfully",
		User:    &view,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /logout                                                                 |
| Tokens are stateless; the client discards its copy.                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Logged out"})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Helpers                                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// gateProfiles drops the profile block that does not match the user's role.
func gateProfiles(role models.Role, c *models.ContributorProfile, p *models.ParticipantProfile) (*models.ContributorProfile, *models.ParticipantProfile) {
	if role != models.RoleContributor {
		c = nil
	}
	if role != models.RoleParticipant {
		p = nil
	}
	return c, p
}

func sanitizeContributor(c *models.ContributorProfile) {
	if c == nil {
		return
	}
	c.Expertise = htmlsanitize.Text(c.Expertise)
	c.Bio = htmlsanitize.Text(c.Bio)
	c.CountryOfResidence = htmlsanitize.Text(c.CountryOfResidence)
	c.OrganizationName = htmlsanitize.Text(c.OrganizationName)
	c.JobTitle = htmlsanitize.Text(c.JobTitle)
	c.OrganizationType = htmlsanitize.Text(c.OrganizationType)
}

func sanitizeParticipant(p *models.ParticipantProfile) {
	if p == nil {
		return
	}
	p.About = htmlsanitize.Text(p.About)
	p.Goals = htmlsanitize.Text(p.Goals)
	p.CountryOfResidence = htmlsanitize.Text(p.CountryOfResidence)
	p.CountryOfBirth = htmlsanitize.Text(p.CountryOfBirth)
	p.PlaceOfBirth = htmlsanitize.Text(p.PlaceOfBirth)
	p.EthnicGroup = htmlsanitize.Text(p.EthnicGroup)
	p.Language = htmlsanitize.Text(p.Language)
	p.LanguageFluent = htmlsanitize.Slice(p.LanguageFluent)
	p.RegionalDialect = htmlsanitize.Text(p.RegionalDialect)
	p.EducationLevel = htmlsanitize.Text(p.EducationLevel)
	p.EducationCurrentStatus = htmlsanitize.Text(p.EducationCurrentStatus)
	p.EducationFieldOfStudy = htmlsanitize.Text(p.EducationFieldOfStudy)
	p.EducationYearCompleted = htmlsanitize.Text(p.EducationYearCompleted)
	p.EmploymentStatus = htmlsanitize.Text(p.EmploymentStatus)
	p.EmploymentSector = htmlsanitize.Text(p.EmploymentSector)
	p.EmploymentIndustry = htmlsanitize.Text(p.EmploymentIndustry)
	p.EmploymentJobTitle = htmlsanitize.Text(p.EmploymentJobTitle)
	p.AvailabilityToParticipate = htmlsanitize.Text(p.AvailabilityToParticipate)
	p.Currency = htmlsanitize.Text(p.Currency)
	p.Interests = htmlsanitize.Slice(p.Interests)
	p.LinkedInProfile = htmlsanitize.Text(p.LinkedInProfile)
}
