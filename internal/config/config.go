package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	// Vendor credentials for the search proxies. Optional at startup:
	// a missing credential surfaces as a "not configured" response on
	// the corresponding endpoint instead of a boot failure.
	VKServiceToken string
	YouTubeAPIKey  string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// .env may not exist outside local development
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		VKServiceToken: getEnv("VK_SERVICE_TOKEN", ""),
		YouTubeAPIKey:  getEnv("YOUTUBE_API_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
