package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitern/vitern-api/internal/application/internship"
	"github.com/vitern/vitern-api/internal/application/profile"
	"github.com/vitern/vitern-api/internal/pkg/validate"
)

// InternshipHandler handles internship postings and applications.
type InternshipHandler struct {
	svc      internship.Service
	profiles profile.Service
}

func NewInternshipHandler(svc internship.Service, profiles profile.Service) *InternshipHandler {
	return &InternshipHandler{svc: svc, profiles: profiles}
}

func (h *InternshipHandler) Create(w http.ResponseWriter, r *http.Request) {
	rec, ok := resolveRecruiter(w, r, h.profiles)
	if !ok {
		return
	}
	var req internship.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := h.svc.Create(r.Context(), rec.RecruiterID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, in)
}

func (h *InternshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (h *InternshipHandler) Update(w http.ResponseWriter, r *http.Request) {
	rec, ok := resolveRecruiter(w, r, h.profiles)
	if !ok {
		return
	}
	var req internship.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := h.svc.Update(r.Context(), rec.RecruiterID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// ListOpen returns the open postings visible to students.
func (h *InternshipHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListOpen(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListMine returns the caller recruiter's own postings, any status.
func (h *InternshipHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	rec, ok := resolveRecruiter(w, r, h.profiles)
	if !ok {
		return
	}
	list, err := h.svc.ListByRecruiter(r.Context(), rec.RecruiterID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InternshipHandler) Apply(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	app, err := h.svc.Apply(r.Context(), st.StudentID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (h *InternshipHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	rec, ok := resolveRecruiter(w, r, h.profiles)
	if !ok {
		return
	}
	list, err := h.svc.ListApplications(r.Context(), rec.RecruiterID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InternshipHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	list, err := h.svc.ListStudentApplications(r.Context(), st.StudentID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *InternshipHandler) Decide(w http.ResponseWriter, r *http.Request) {
	rec, ok := resolveRecruiter(w, r, h.profiles)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status required")
		return
	}
	app, err := h.svc.Decide(r.Context(), rec.RecruiterID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}
