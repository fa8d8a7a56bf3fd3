package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vitern/vitern-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps session exchange and refresh responses.
type AuthEnvelope struct {
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	Session      *domain.Session `json:"session,omitempty"`
	Profile      *domain.Profile `json:"profile,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps a service error to its HTTP status and public message via
// the domain sentinels. Wrapped detail stays server-side; clients see only
// the sentinel text.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidOrExpiredCode):
		writeError(w, http.StatusBadRequest, domain.ErrInvalidOrExpiredCode.Error())
	case errors.Is(err, domain.ErrInvalidEmailDomain):
		writeError(w, http.StatusBadRequest, domain.ErrInvalidEmailDomain.Error())
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrIdentityCreation):
		writeError(w, http.StatusInternalServerError, domain.ErrIdentityCreation.Error())
	case errors.Is(err, domain.ErrProfileCreation):
		writeError(w, http.StatusInternalServerError, domain.ErrProfileCreation.Error())
	case errors.Is(err, domain.ErrSignInLinkGeneration):
		writeError(w, http.StatusInternalServerError, domain.ErrSignInLinkGeneration.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
