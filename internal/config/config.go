// Package config provides configuration for the assistant orchestrator.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the orchestrator configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// OpenAI-compatible LLM endpoint
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Timeouts
	ClassifyTimeout time.Duration
	HandlerTimeout  time.Duration

	// Webhook sink for run events (optional)
	WebhookURL string

	// Default customer when the caller omits one
	DefaultCustomerID string

	// Logging
	LogLevel string
}

// Load loads configuration from a .env file (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:       getEnv("DATABASE_URL", "file:assistant.db?cache=shared&mode=rwc"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL_NAME", "gpt-4o"),
		ClassifyTimeout:   time.Duration(getEnvInt("CLASSIFY_TIMEOUT_MS", 10000)) * time.Millisecond,
		HandlerTimeout:    time.Duration(getEnvInt("HANDLER_TIMEOUT_MS", 120000)) * time.Millisecond,
		WebhookURL:        getEnv("WEBHOOK_URL", ""),
		DefaultCustomerID: getEnv("DEFAULT_CUSTOMER_ID", "CUST001"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
