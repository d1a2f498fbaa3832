package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"markhub/internal/repository"
	"markhub/internal/service"
	"markhub/internal/transport/rest/handler"
	"markhub/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	DetectionService *service.DetectionService
	SessionService   *service.SessionService
	ExamPaperRepo    repository.ExamPaperRepo
	MarkingSchemes   repository.MarkingSchemeRepo
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	detectHandler := handler.NewDetectHandler(c.DetectionService)
	homeworkHandler := handler.NewHomeworkHandler(c.SessionService)
	corpusHandler := handler.NewCorpusHandler(c.ExamPaperRepo, c.MarkingSchemes)
	wsHandler := ws.NewHandler(c.WSHub)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/detect", detectHandler.Detect).Methods("POST", "OPTIONS")
	v1.HandleFunc("/homework", homeworkHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions", homeworkHandler.ListSessions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{id}", homeworkHandler.GetSession).Methods("GET", "OPTIONS")
	v1.HandleFunc("/papers", corpusHandler.ListPapers).Methods("GET", "OPTIONS")
	v1.HandleFunc("/papers/{id}", corpusHandler.GetPaper).Methods("GET", "OPTIONS")
	v1.HandleFunc("/schemes", corpusHandler.ListSchemes).Methods("GET", "OPTIONS")

	// WebSocket routes
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
