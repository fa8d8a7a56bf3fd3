package handler

import (
	"net/http"
	"strconv"

	"github.com/vitern/vitern-api/internal/application/leaderboard"
)

// LeaderboardHandler serves the ranked student leaderboard.
type LeaderboardHandler struct {
	svc leaderboard.Service
}

func NewLeaderboardHandler(svc leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.svc.Get(r.Context(), limit)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
