package handler

import (
	"encoding/json"
	"net/http"

	"edumatch/internal/model"
	"edumatch/internal/service"
	"edumatch/internal/transport/rest/middleware"
)

// LearnerHandler handles learner endpoints.
type LearnerHandler struct {
	learnerSvc *service.LearnerService
}

// NewLearnerHandler creates a new learner handler.
func NewLearnerHandler(learnerSvc *service.LearnerService) *LearnerHandler {
	return &LearnerHandler{learnerSvc: learnerSvc}
}

// Register handles POST /v1/learners
func (h *LearnerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterLearnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	learner, err := h.learnerSvc.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, learner)
}

// GetProfile handles GET /v1/learners/me
func (h *LearnerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	learnerID := middleware.GetUserID(r.Context())

	learner, err := h.learnerSvc.GetProfile(r.Context(), learnerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, learner)
}

// SubmitAssessment handles POST /v1/learners/assessment
func (h *LearnerHandler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	learnerID := middleware.GetUserID(r.Context())

	var sample model.BehavioralSample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	assessment, err := h.learnerSvc.SubmitAssessment(r.Context(), learnerID, sample)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, assessment)
}

// GetAssessment handles GET /v1/learners/assessment
func (h *LearnerHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	learnerID := middleware.GetUserID(r.Context())

	assessment, err := h.learnerSvc.GetAssessment(r.Context(), learnerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}
