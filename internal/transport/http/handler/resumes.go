package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vitern/vitern-api/internal/application/profile"
	"github.com/vitern/vitern-api/internal/application/resume"
)

// ResumeHandler handles resume generation and downloads.
type ResumeHandler struct {
	svc      resume.Service
	profiles profile.Service
}

func NewResumeHandler(svc resume.Service, profiles profile.Service) *ResumeHandler {
	return &ResumeHandler{svc: svc, profiles: profiles}
}

func (h *ResumeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	res, err := h.svc.Generate(r.Context(), st.StudentID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	list, err := h.svc.List(r.Context(), st.StudentID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Download streams the stored PDF to the owning student.
func (h *ResumeHandler) Download(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	res, rc, err := h.svc.Download(r.Context(), st.StudentID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	defer rc.Close()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.ResumeID+".pdf"))
	_, _ = io.Copy(w, rc)
}

// Link returns a time-limited download URL for one resume.
func (h *ResumeHandler) Link(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	url, err := h.svc.Link(r.Context(), st.StudentID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *ResumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), st.StudentID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "resume deleted"})
}
