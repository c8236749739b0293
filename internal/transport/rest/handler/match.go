package handler

import (
	"net/http"

	"edumatch/internal/service"
	"edumatch/internal/transport/rest/middleware"
)

// MatchHandler handles the matching endpoint.
type MatchHandler struct {
	matchSvc *service.MatchingService
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(matchSvc *service.MatchingService) *MatchHandler {
	return &MatchHandler{matchSvc: matchSvc}
}

// GetMatches handles GET /v1/learners/matches
func (h *MatchHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	learnerID := middleware.GetUserID(r.Context())

	resp, err := h.matchSvc.Match(r.Context(), learnerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
