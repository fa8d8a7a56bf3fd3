package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vitern/vitern-api/internal/application/chat"
	"github.com/vitern/vitern-api/internal/application/profile"
	"github.com/vitern/vitern-api/internal/pkg/validate"
	"github.com/vitern/vitern-api/internal/transport/http/middleware"
)

// ChatHandler handles mentorship chat rooms and messages.
type ChatHandler struct {
	svc      chat.Service
	profiles profile.Service
}

func NewChatHandler(svc chat.Service, profiles profile.Service) *ChatHandler {
	return &ChatHandler{svc: svc, profiles: profiles}
}

func (h *ChatHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	st, ok := resolveStudent(w, r, h.profiles)
	if !ok {
		return
	}
	var req chat.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	room, err := h.svc.CreateRoom(r.Context(), st.StudentID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.ListRooms(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req chat.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg, err := h.svc.PostMessage(r.Context(), claims.AccountID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	msgs, err := h.svc.ListMessages(r.Context(), chi.URLParam(r, "id"), int32(limit))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
