package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitern/vitern-api/internal/application/mentorship"
	"github.com/vitern/vitern-api/internal/application/profile"
	"github.com/vitern/vitern-api/internal/pkg/validate"
)

// MentorshipHandler handles mentorship requests and decisions.
type MentorshipHandler struct {
	svc      mentorship.Service
	profiles profile.Service
}

func NewMentorshipHandler(svc mentorship.Service, profiles profile.Service) *MentorshipHandler {
	return &MentorshipHandler{svc: svc, profiles: profiles}
}

func (h *MentorshipHandler) Request(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	var req mentorship.RequestMentorshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.svc.Request(r.Context(), st.StudentID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MentorshipHandler) Decide(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status required")
		return
	}
	m, err := h.svc.Decide(r.Context(), st.StudentID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MentorshipHandler) Complete(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	m, err := h.svc.Complete(r.Context(), st.StudentID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// List returns both sides of the caller's mentorships.
func (h *MentorshipHandler) List(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	asMentor, err := h.svc.ListForMentor(r.Context(), st.StudentID)
	if err != nil {
		httpError(w, err)
		return
	}
	asMentee, err := h.svc.ListForMentee(r.Context(), st.StudentID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"as_mentor": asMentor,
		"as_mentee": asMentee,
	})
}
