package api

import (
	"log"
	"net/http"
	"time"

	"communitychat-backend/internal/handlers"
	"communitychat-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router
// setup, primarily handlers.
type RouterDependencies struct {
	ChatHandlers     *handlers.ChatHandlers
	FeedbackHandlers *handlers.FeedbackHandlers
	ResourceHandlers *handlers.ResourceHandlers
	HealthHandlers   *handlers.HealthHandlers
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)                 // Recover from panics, return 500
	r.Use(middleware.Timeout(60 * time.Second)) // Set a request timeout

	// --- CORS Configuration ---
	// Adjust AllowedOrigins for your frontend deployment(s)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// --- Health Check ---
	if deps.HealthHandlers != nil {
		r.Get("/health", deps.HealthHandlers.HandleHealth)
	} else {
		log.Println("WARN: HealthHandlers dependency is nil, skipping /health route.")
	}

	// --- API Routes ---
	// No authentication layer: callers identify themselves, at most, with
	// opaque user_id / conversation_id tokens in the request body.
	r.Route("/v1", func(r chi.Router) {
		if deps.ChatHandlers != nil {
			r.Post("/chat", deps.ChatHandlers.HandleChat)
			r.Get("/conversations/{conversationID}/messages", deps.ChatHandlers.HandleListMessages)
		} else {
			log.Println("WARN: ChatHandlers dependency is nil, skipping /v1/chat routes.")
		}

		if deps.FeedbackHandlers != nil {
			r.Post("/feedback", deps.FeedbackHandlers.HandleSubmitFeedback)
		} else {
			log.Println("WARN: FeedbackHandlers dependency is nil, skipping /v1/feedback route.")
		}

		if deps.ResourceHandlers != nil {
			r.Get("/resources", deps.ResourceHandlers.HandleSearchResources)
			r.Get("/events", deps.ResourceHandlers.HandleListEvents)
			r.Get("/stats", deps.ResourceHandlers.HandleGetStats)
		} else {
			log.Println("WARN: ResourceHandlers dependency is nil, skipping /v1/resources routes.")
		}
	})

	return r
}
