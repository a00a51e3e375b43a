// Package config provides environment-based configuration.
//
// Loads from a local .env file when present (godotenv), then maps
// environment variables to an explicit Config struct injected at startup.
// Validates required fields.
package config
