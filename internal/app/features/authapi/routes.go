// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/askfield/askfield/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, verifier *auth.Verifier) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Get("/verify-email/{token}", h.HandleVerifyEmail)
	r.Post("/login", h.HandleLogin)
	r.Post("/resend-verification", h.HandleResendVerification)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(verifier.RequireSignedIn)
		r.Get("/me", h.HandleMe)
		r.Put("/complete-profile", h.HandleCompleteProfile)
		r.Put("/update-profile", h.HandleUpdateProfile)
	})

	return r
}
