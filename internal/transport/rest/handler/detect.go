package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"markhub/internal/matching"
	"markhub/internal/service"
)

// DetectHandler handles direct question-detection endpoints
type DetectHandler struct {
	detectionSvc *service.DetectionService
}

// NewDetectHandler creates a new detect handler
func NewDetectHandler(detectionSvc *service.DetectionService) *DetectHandler {
	return &DetectHandler{detectionSvc: detectionSvc}
}

// DetectRequest is the request body for running a detection
type DetectRequest struct {
	QuestionText   string `json:"questionText"`
	QuestionNumber string `json:"questionNumber,omitempty"`
}

// Detect handles POST /v1/detect
func (h *DetectHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.detectionSvc.Detect(r.Context(), req.QuestionText, req.QuestionNumber)
	if err != nil {
		if errors.Is(err, matching.ErrMissingMarks) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
