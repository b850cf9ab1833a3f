// Package config reads the client's configuration from the environment.
// A .env file in the working directory is honored when present (godotenv),
// then real environment variables win.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIURL is the backend base URL.
	APIURL string
	// DBPath is where the local key-value store lives.
	DBPath string
	// LogLevel is one of debug, info, warn, error.
	LogLevel slog.Level
}

// Load builds the configuration from .env + environment, with defaults for
// everything — the CLI works out of the box against a local backend.
func Load() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	return Config{
		APIURL:   getEnv("LEARNHUB_API_URL", "http://localhost:8000"),
		DBPath:   getEnv("LEARNHUB_DB", defaultDBPath()),
		LogLevel: parseLevel(getEnv("LEARNHUB_LOG_LEVEL", "info")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "learnhub.db"
	}
	return filepath.Join(home, ".learnhub", "learnhub.db")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
