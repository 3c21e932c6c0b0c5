package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Replicate API (background removal)
	ReplicateAPIToken    string
	ReplicateAPIBaseURL  string
	RemoveBgModelVersion string

	// Auth
	JWTSecret string

	// Storage
	PublicDir string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	// Optional .env for local development; real env vars always win.
	_ = godotenv.Load()

	cfg := &Config{
		ReplicateAPIToken:    getEnv("REPLICATE_API_TOKEN", ""),
		ReplicateAPIBaseURL:  getEnv("REPLICATE_API_BASE_URL", "https://api.replicate.com/v1/"),
		RemoveBgModelVersion: getEnv("REMOVE_BG_MODEL_VERSION", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		PublicDir: getEnv("PUBLIC_DIR", "public"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// IsProduction reports whether the server runs with production settings
// (gin release mode, secure cookies).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
