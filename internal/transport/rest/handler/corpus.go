package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"markhub/internal/repository"
)

// CorpusHandler exposes read-only views of the exam-paper and
// marking-scheme collections
type CorpusHandler struct {
	papers  repository.ExamPaperRepo
	schemes repository.MarkingSchemeRepo
}

// NewCorpusHandler creates a new corpus handler
func NewCorpusHandler(papers repository.ExamPaperRepo, schemes repository.MarkingSchemeRepo) *CorpusHandler {
	return &CorpusHandler{papers: papers, schemes: schemes}
}

// ListPapers handles GET /v1/papers
func (h *CorpusHandler) ListPapers(w http.ResponseWriter, r *http.Request) {
	papers, err := h.papers.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"papers": papers})
}

// GetPaper handles GET /v1/papers/{id}
func (h *CorpusHandler) GetPaper(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	paper, err := h.papers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if paper == nil {
		writeError(w, http.StatusNotFound, "paper not found")
		return
	}
	writeJSON(w, http.StatusOK, paper)
}

// ListSchemes handles GET /v1/schemes
func (h *CorpusHandler) ListSchemes(w http.ResponseWriter, r *http.Request) {
	schemes, err := h.schemes.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"schemes": schemes})
}
