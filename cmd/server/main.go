package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innerparts/internal/artifact"
	"innerparts/internal/cache"
	"innerparts/internal/config"
	"innerparts/internal/predictor"
	"innerparts/internal/registry"
	"innerparts/internal/repository"
	"innerparts/internal/service"
	"innerparts/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Load the trained model bundle before anything else. A broken or
	// partial artifact is a permanent unavailability condition, so the
	// process refuses to come up instead of serving bad predictions.
	bundle, err := artifact.Load(cfg.ModelPath)
	if err != nil {
		log.Fatal("Failed to load model artifact: ", err)
	}
	log.Printf("Model loaded with %d characters (version %s)", bundle.NumLabels(), bundle.ModelVersion)

	characterRegistry := registry.Default()
	log.Printf("Character registry loaded with %d characters", characterRegistry.Len())

	// Log agent settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("Agent Config:")
	log.Printf("  Chat:    %s", aiConfig.Models.Chat)
	log.Printf("  Summary: %s", aiConfig.Models.Summary)
	if aiConfig.IsEnabled() {
		log.Println("  API Key: configured")
	} else {
		log.Println("  API Key: NOT SET (using mock agent)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories and caches
	userRepo := repository.NewUserRepo(db)
	predictionCache := cache.NewPredictionCache(rdb)
	memoryCache := cache.NewMemoryCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	agentSvc := service.NewAgentService()
	chatSvc := service.NewChatService(userRepo, memoryCache, agentSvc)
	predictionSvc := service.NewPredictionService(predictor.New(bundle, characterRegistry), predictionCache)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		PredictionService: predictionSvc,
		ChatService:       chatSvc,
		CharacterCount:    bundle.NumLabels(),
		ModelVersion:      bundle.ModelVersion,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  GET  /health")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST /v1/predict")
		log.Println("  POST /v1/chat")
		log.Println("  WS   /v1/ws/chat")

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
