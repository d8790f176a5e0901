// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userstore "github.com/askfield/askfield/internal/app/store/users"
	"github.com/askfield/askfield/internal/app/system/googleauth"
	"github.com/askfield/askfield/internal/app/system/normalize"
	"github.com/askfield/askfield/internal/app/system/password"
	"github.com/askfield/askfield/internal/app/system/timeouts"
	"github.com/askfield/askfield/internal/app/system/token"
	"github.com/askfield/askfield/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

// UserStore is the subset of the user store the Google flow needs.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Handler signs users in with a Google authorization code, creating a
// verified account on first contact.
type Handler struct {
	Exchanger googleauth.Exchanger
	Users     UserStore
	Tokens    *token.Issuer
	Log       *zap.Logger
}

func NewHandler(exchanger googleauth.Exchanger, users UserStore, tokens *token.Issuer, logger *zap.Logger) *Handler {
	return &Handler{
		Exchanger: exchanger,
		Users:     users,
		Tokens:    tokens,
		Log:       logger,
	}
}

type googleLoginRequest struct {
	Code string `json:"code"`
	Role string `json:"role"`
}

func (r googleLoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.Role, validation.Required,
			validation.In(string(models.RoleContributor), string(models.RoleParticipant))),
	)
}

type userView struct {
	ID               string      `json:"id"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Email            string      `json:"email"`
	Role             models.Role `json:"role"`
	IsVerified       bool        `json:"isVerified"`
	ProfileCompleted bool        `json:"profileCompleted"`
}

type response struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Token   string    `json:"token,omitempty"`
	User    *userView `json:"user,omitempty"`
	IsNew   bool      `json:"isNewUser,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/google                                                        |
| Exchanges the authorization code via Google. An existing account keeps its   |
| stored role regardless of the request; a new account is created already      |
| verified, with an unguessable password placeholder.                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: "Invalid request body"})
		return
	}
	req.Role = normalize.Role(req.Role)
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, response{Success: false, Message: err.Error()})
		return
	}

	claim, err := h.Exchanger.Exchange(r.Context(), req.Code)
	if err != nil {
		h.Log.Warn("google code exchange failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: "Google authentication failed"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, isNew, err := h.findOrCreate(ctx, claim, models.Role(req.Role))
	if err != nil {
		h.Log.Error("google sign-in failed", zap.Error(err), zap.String("email", claim.Email))
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: "Login failed"})
		return
	}

	jwt, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		h.Log.Error("issue token failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		writeJSON(w, http.StatusInternalServerError, response{Success: false, Message: "Login failed"})
		return
	}

	h.Log.Info("user logged in via google",
		zap.String("user_id", u.ID.Hex()),
		zap.Bool("is_new", isNew))

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Token:   jwt,
		IsNew:   isNew,
		User: &userView{
			ID:               u.ID.Hex(),
			FirstName:        u.FirstName,
			LastName:         u.LastName,
			Email:            u.Email,
			Role:             u.Role,
			IsVerified:       u.IsVerified,
			ProfileCompleted: u.ProfileCompleted,
		},
	})
}

func (h *Handler) findOrCreate(ctx context.Context, claim *googleauth.Claim, role models.Role) (*models.User, bool, error) {
	existing, err := h.Users.GetByEmail(ctx, claim.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return nil, false, err
	}

	first := claim.GivenName
	if first == "" {
		first = "Google"
	}
	last := claim.FamilyName
	if last == "" {
		last = "User"
	}

	created, err := h.Users.Create(ctx, models.User{
		FirstName:    first,
		LastName:     last,
		Email:        claim.Email,
		Role:         role,
		PasswordHash: password.RandomHash(),
		IsVerified:   true,
	})
	if err != nil {
		// A concurrent signup may have won the race on the unique email.
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			u, gerr := h.Users.GetByEmail(ctx, claim.Email)
			if gerr == nil {
				return u, false, nil
			}
		}
		return nil, false, err
	}
	return &created, true, nil
}
