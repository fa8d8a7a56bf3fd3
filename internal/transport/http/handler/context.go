package handler

import (
	"net/http"

	"github.com/vitern/vitern-api/internal/application/profile"
	"github.com/vitern/vitern-api/internal/domain"
	"github.com/vitern/vitern-api/internal/transport/http/middleware"
)

// resolveStudent maps the authenticated account to its student profile.
// Writes the error response itself; callers bail out when ok is false.
func resolveStudent(w http.ResponseWriter, r *http.Request, profiles profile.Service) (*domain.Student, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	p, err := profiles.Resolve(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, err)
		return nil, false
	}
	if p.Kind != domain.ProfileStudent {
		writeError(w, http.StatusForbidden, "student profile required")
		return nil, false
	}
	return p.Student, true
}

// resolveRecruiter maps the authenticated account to its recruiter profile.
func resolveRecruiter(w http.ResponseWriter, r *http.Request, profiles profile.Service) (*domain.Recruiter, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	p, err := profiles.Resolve(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, err)
		return nil, false
	}
	if p.Kind != domain.ProfileRecruiter {
		writeError(w, http.StatusForbidden, "recruiter profile required")
		return nil, false
	}
	return p.Recruiter, true
}
