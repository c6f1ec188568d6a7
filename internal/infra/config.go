package infra

import (
	"log"
	"os"
	"time"
)

// Config is read from the environment once at startup. Anything mandatory
// that is missing is a fatal misconfiguration, not a runtime condition.
type Config struct {
	Port        string
	PostgresURL string

	AIBaseURL          string
	AIPredictTimeout   time.Duration
	AIAuthorizeTimeout time.Duration

	PhotoDir string
}

func LoadConfig() *Config {
	cfg := &Config{
		Port:               envOr("PORT", "8080"),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		AIBaseURL:          os.Getenv("AI_BASE_URL"),
		AIPredictTimeout:   120 * time.Second,
		AIAuthorizeTimeout: 45 * time.Second,
		PhotoDir:           envOr("PHOTO_DIR", "uploads"),
	}

	if cfg.PostgresURL == "" {
		log.Fatal("POSTGRES_URL is required")
	}
	if cfg.AIBaseURL == "" {
		log.Fatal("AI_BASE_URL is required")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
