package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment
// variables.
type Config struct {
	DatabaseURL string
	HTTPPort    string

	OpenAIAPIKey  string
	OpenAIBaseURL string // Optional, for OpenAI-compatible gateways
	OpenAIModel   string

	AIMaxAttempts    int
	AIRetryBaseDelay time.Duration
	AIRequestTimeout time.Duration
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	err := godotenv.Load() // Loads .env from the current directory or parent dirs
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	dbURL := getEnv("DATABASE_URL", "") // No default, should fail if not set
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	apiKey := getEnv("OPENAI_API_KEY", "")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set. Every chat turn will be served from the local knowledge fallback.")
	}

	cfg := &Config{
		DatabaseURL:      dbURL,
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		OpenAIAPIKey:     apiKey,
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AIMaxAttempts:    getEnvInt("AI_MAX_ATTEMPTS", 3),
		AIRetryBaseDelay: time.Duration(getEnvInt("AI_RETRY_BASE_MS", 1000)) * time.Millisecond,
		AIRequestTimeout: time.Duration(getEnvInt("AI_REQUEST_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, Model=%s, MaxAttempts=%d, RetryBase=%s",
		cfg.HTTPPort, cfg.OpenAIModel, cfg.AIMaxAttempts, cfg.AIRetryBaseDelay)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Env variable %s not set, using default: %s", key, fallback)
	return fallback
}

// getEnvInt retrieves an integer environment variable or returns a default
// value on absence or parse failure.
func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s', using default %d. Error: %v", key, value, fallback, err)
		return fallback
	}
	return parsed
}
