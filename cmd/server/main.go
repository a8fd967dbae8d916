package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"communitychat-backend/internal/ai"
	"communitychat-backend/internal/api"
	"communitychat-backend/internal/config"
	"communitychat-backend/internal/handlers"
	"communitychat-backend/internal/persona"
	"communitychat-backend/internal/services"
	"communitychat-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting CommunityChat Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Persona, AI Client, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	// The persona knowledge tables are built once here and shared,
	// immutable, across all requests.
	personaEngine := persona.NewEngine()
	log.Println("Persona engine initialized.")

	aiClient := ai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.AIMaxAttempts, cfg.AIRetryBaseDelay)
	log.Printf("AI client initialized (model=%s, configured=%t).", cfg.OpenAIModel, aiClient.Status().Configured)

	// --- Initialize Services ---
	chatService := services.NewChatService(pgStore, aiClient, personaEngine)
	log.Println("ChatService initialized.")
	feedbackService := services.NewFeedbackService(pgStore)
	log.Println("FeedbackService initialized.")
	resourceService := services.NewResourceService(pgStore)
	log.Println("ResourceService initialized.")

	// --- Initialize Handlers ---
	chatHandlers := handlers.NewChatHandlers(chatService)
	feedbackHandlers := handlers.NewFeedbackHandlers(feedbackService)
	resourceHandlers := handlers.NewResourceHandlers(resourceService)
	healthHandlers := handlers.NewHealthHandlers(pgStore, aiClient)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	router := api.NewRouter(api.RouterDependencies{
		ChatHandlers:     chatHandlers,
		FeedbackHandlers: feedbackHandlers,
		ResourceHandlers: resourceHandlers,
		HealthHandlers:   healthHandlers,
	})
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks.
		// WriteTimeout leaves headroom for a full provider retry cycle.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.AIRequestTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	// Run server in a goroutine so it doesn't block
	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	// Wait for interrupt signal
	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	log.Println("Server shutdown complete.")
}
