// Package config reads runtime configuration from environment variables,
// with a .env file honored in development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port           string
	CORSOrigin     string
	StoreBackend   string
	DataDir        string
	GCPProjectID   string
	FirestoreDB    string
	RoomSecret     string
	DebounceWindow time.Duration
	SMTP           SMTPConfig
	AppURL         string
}

// SMTPConfig configures outbound invite email. Empty host disables it.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// Load reads configuration from environment variables with sensible
// defaults. A missing .env file is fine; production sets real env vars.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           envOrDefault("PORT", "8080"),
		CORSOrigin:     envOrDefault("CORS_ORIGIN", "http://localhost:5173"),
		StoreBackend:   envOrDefault("STORE_BACKEND", "memory"),
		DataDir:        envOrDefault("DATA_DIR", "./data"),
		GCPProjectID:   os.Getenv("GCP_PROJECT_ID"),
		FirestoreDB:    os.Getenv("FIRESTORE_DATABASE"),
		RoomSecret:     envOrDefault("ROOM_TOKEN_SECRET", "dev-insecure-secret"),
		DebounceWindow: durationEnvOrDefault("SCORE_DEBOUNCE_WINDOW", 400*time.Millisecond),
		AppURL:         envOrDefault("APP_URL", "http://localhost:5173"),
		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: envOrDefault("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: os.Getenv("SMTP_FROM"),
		},
	}
}

func envOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
