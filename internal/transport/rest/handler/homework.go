package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"markhub/internal/service"
)

// HomeworkHandler handles homework submission and session endpoints
type HomeworkHandler struct {
	sessionSvc *service.SessionService
}

// NewHomeworkHandler creates a new homework handler
func NewHomeworkHandler(sessionSvc *service.SessionService) *HomeworkHandler {
	return &HomeworkHandler{sessionSvc: sessionSvc}
}

// SubmitRequest is the request body for submitting a homework image
type SubmitRequest struct {
	MimeType    string `json:"mimeType"`
	ImageBase64 string `json:"imageBase64"`
}

// Submit handles POST /v1/homework
func (h *HomeworkHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "imageBase64 is required")
		return
	}
	if req.MimeType == "" {
		req.MimeType = "image/jpeg"
	}

	session, err := h.sessionSvc.SubmitHomework(r.Context(), req.MimeType, req.ImageBase64)
	if err != nil && session == nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err != nil {
		// Session exists but marking was aborted on corrupt corpus data
		writeJSON(w, http.StatusUnprocessableEntity, session)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// GetSession handles GET /v1/sessions/{id}
func (h *HomeworkHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	session, err := h.sessionSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// ListSessions handles GET /v1/sessions
func (h *HomeworkHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionSvc.List(r.Context(), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}
