package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitern/vitern-api/internal/application/badge"
	"github.com/vitern/vitern-api/internal/application/profile"
	"github.com/vitern/vitern-api/internal/pkg/validate"
)

// BadgeHandler handles badge awards and listings.
type BadgeHandler struct {
	svc      badge.Service
	profiles profile.Service
}

func NewBadgeHandler(svc badge.Service, profiles profile.Service) *BadgeHandler {
	return &BadgeHandler{svc: svc, profiles: profiles}
}

func (h *BadgeHandler) Award(w http.ResponseWriter, r *http.Request) {
	rec, ok := resolveRecruiter(w, r, h.profiles)
	if !ok {
		return
	}
	var req badge.AwardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := h.svc.Award(r.Context(), rec.RecruiterID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BadgeHandler) ListForStudent(w http.ResponseWriter, r *http.Request) {
	badges, err := h.svc.ListForStudent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

// ListMine returns the caller student's own badges.
func (h *BadgeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	badges, err := h.svc.ListForStudent(r.Context(), st.StudentID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}
