package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration for the application.
type Config struct {
	// Generation provider: "groq" (default) or "gemini".
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string
	GroqModel    string

	DatabasePath string
	HTTPAddr     string

	// Telegram Config (only required by the bot binary)
	TelegramBotToken string

	// Pipeline knobs
	MaxPlanDays           int
	MaxGenerationAttempts int
	GenerationTimeout     time.Duration
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first if present.
func NewFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Provider:              envOr("GENERATION_PROVIDER", "groq"),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           envOr("GEMINI_MODEL", "gemini-2.0-flash"),
		GroqAPIKey:            os.Getenv("GROQ_API_KEY"),
		GroqModel:             envOr("GROQ_MODEL", "llama-3.3-70b-versatile"),
		DatabasePath:          envOr("DATABASE_PATH", "data/hungryjack.db"),
		HTTPAddr:              envOr("HTTP_ADDR", ":8080"),
		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		MaxPlanDays:           envIntOr("MAX_PLAN_DAYS", 7),
		MaxGenerationAttempts: envIntOr("MAX_GENERATION_ATTEMPTS", 3),
		GenerationTimeout:     envDurationOr("GENERATION_TIMEOUT", 30*time.Second),
	}

	switch cfg.Provider {
	case "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown GENERATION_PROVIDER %q", cfg.Provider)
	}

	if cfg.MaxPlanDays < 1 {
		return nil, fmt.Errorf("MAX_PLAN_DAYS must be at least 1")
	}
	if cfg.MaxGenerationAttempts < 1 {
		return nil, fmt.Errorf("MAX_GENERATION_ATTEMPTS must be at least 1")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
