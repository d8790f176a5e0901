// internal/app/features/authapi/respond.go
package authapi

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response shape for all auth endpoints.
type envelope struct {
	Success           bool      `json:"success"`
	Message           string    `json:"message,omitempty"`
	NeedsVerification bool      `json:"needsVerification,omitempty"`
	Token             string    `json:"token,omitempty"`
	User              *userView `json:"user,omitempty"`
	Errors            []string  `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, errs []string) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
