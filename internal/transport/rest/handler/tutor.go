package handler

import (
	"encoding/json"
	"net/http"

	"edumatch/internal/model"
	"edumatch/internal/service"
	"edumatch/internal/transport/rest/middleware"
)

// TutorHandler handles tutor endpoints.
type TutorHandler struct {
	tutorSvc *service.TutorService
}

// NewTutorHandler creates a new tutor handler.
func NewTutorHandler(tutorSvc *service.TutorService) *TutorHandler {
	return &TutorHandler{tutorSvc: tutorSvc}
}

// Register handles POST /v1/tutors
func (h *TutorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterTutorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tutor, err := h.tutorSvc.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tutor)
}

// GetProfile handles GET /v1/tutors/me
func (h *TutorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	tutorID := middleware.GetUserID(r.Context())

	tutor, err := h.tutorSvc.GetProfile(r.Context(), tutorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tutor)
}

// UpdatePedagogy handles PUT /v1/tutors/pedagogy
func (h *TutorHandler) UpdatePedagogy(w http.ResponseWriter, r *http.Request) {
	tutorID := middleware.GetUserID(r.Context())

	var req model.PedagogyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fingerprint, err := h.tutorSvc.UpdatePedagogy(r.Context(), tutorID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fingerprint)
}
