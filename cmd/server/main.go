package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"markhub/internal/cache"
	"markhub/internal/config"
	"markhub/internal/repository"
	"markhub/internal/service"
	"markhub/internal/transport/rest"
	"markhub/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Vision: %s", aiConfig.Models.Vision)
	log.Printf("  Marker: %s", aiConfig.Models.Marker)
	if aiConfig.IsEnabled() {
		log.Println("  API Key: configured")
	} else {
		log.Println("  API Key: NOT SET (using mock extraction and marking)")
	}

	// MongoDB connection
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
		log.Println("Warning: MONGO_URI not set, using default")
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(databaseName())

	// Redis connection
	redisAddr := os.Getenv("REDIS_URI")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
		log.Println("Warning: REDIS_URI not set, using default")
	}
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	paperRepo := repository.NewExamPaperRepo(db)
	schemeRepo := repository.NewMarkingSchemeRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)

	// Initialize services
	ocrSvc := service.NewOCRService(aiConfig)
	markerSvc := service.NewMarkerService(aiConfig)
	detectionSvc := service.NewDetectionService(paperRepo, schemeRepo, logger)
	sessionSvc := service.NewSessionService(sessionRepo, sessionCache, ocrSvc, markerSvc, detectionSvc, logger)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	sessionSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		DetectionService: detectionSvc,
		SessionService:   sessionSvc,
		ExamPaperRepo:    paperRepo,
		MarkingSchemes:   schemeRepo,
		WSHub:            wsHub,
	}

	router := rest.NewRouter(container)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		log.Println("Endpoints:")
		log.Println("  POST /v1/detect")
		log.Println("  POST /v1/homework")
		log.Println("  GET  /v1/sessions")
		log.Println("  GET  /v1/sessions/{id}")
		log.Println("  GET  /v1/papers")
		log.Println("  GET  /v1/schemes")
		log.Println("  WS   /v1/ws/sessions/{id}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func databaseName() string {
	if name := os.Getenv("MONGO_DATABASE"); name != "" {
		return name
	}
	return "markhub"
}

func logLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
